package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	fadeFPS       = 60
	fadeFrequency = 12.0
	fadeDamping   = 1.0
	fadeEpsilon   = 0.005
)

type springValue struct {
	pos    float64
	vel    float64
	target float64
}

func (s *springValue) step(sp harmonica.Spring) {
	s.pos, s.vel = sp.Update(s.pos, s.vel, s.target)
	if s.settled() {
		s.pos = s.target
		s.vel = 0
	}
}

func (s springValue) settled() bool {
	return math.Abs(s.pos-s.target) < fadeEpsilon && math.Abs(s.vel) < fadeEpsilon
}

// fade animates the hidden-state marker as text opacity, and theme changes
// as a blend from the previous theme color to the new one.
type fade struct {
	spring    harmonica.Spring
	opacity   springValue
	blend     springValue
	from      colorful.Color
	to        colorful.Color
	animating bool
}

func newFade(theme colorful.Color) fade {
	return fade{
		spring: harmonica.NewSpring(harmonica.FPS(fadeFPS), fadeFrequency, fadeDamping),
		blend:  springValue{pos: 1, target: 1},
		from:   theme,
		to:     theme,
	}
}

func (f *fade) show(visible bool) {
	if visible {
		f.opacity.target = 1
	} else {
		f.opacity.target = 0
	}
}

func (f *fade) retheme(c colorful.Color) {
	f.from = f.theme()
	f.to = c
	f.blend = springValue{target: 1}
}

// step advances both springs one frame and reports whether either still moves.
func (f *fade) step() bool {
	f.opacity.step(f.spring)
	f.blend.step(f.spring)
	return !f.settled()
}

func (f fade) settled() bool {
	return f.opacity.settled() && f.blend.settled()
}

// theme is the current, possibly mid-blend, theme color.
func (f fade) theme() colorful.Color {
	return f.from.BlendLab(f.to, clamp01(f.blend.pos)).Clamped()
}

// text is the theme color faded toward the card background by opacity.
func (f fade) text(background colorful.Color) colorful.Color {
	return background.BlendLab(f.theme(), clamp01(f.opacity.pos)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
