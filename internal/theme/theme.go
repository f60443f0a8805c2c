package theme

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyPalette is returned when a picker is built without colors.
var ErrEmptyPalette = errors.New("theme palette is empty")

// Color is a theme token: a "#RRGGBB" hex color.
type Color string

// RGB resolves the token to a colorful.Color. Invalid tokens resolve to black.
func (c Color) RGB() colorful.Color {
	rgb, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return rgb
}

// DefaultPalette holds the stock background themes.
var DefaultPalette = []Color{
	"#1F3A5F", // dark blue
	"#6B4C9A", // purple
	"#E0605E", // light red
	"#8E2323", // dark red
	"#B3A06B", // khaki
	"#5C4030", // dark brown
	"#3E8E41", // green
	"#8FCB9B", // extra light green
	"#1E5631", // deep green
}

// DefaultHex returns DefaultPalette as plain strings, for config defaults.
func DefaultHex() []string {
	out := make([]string, len(DefaultPalette))
	for i, c := range DefaultPalette {
		out[i] = string(c)
	}
	return out
}

// ParsePalette validates hex color strings and normalizes them to lower case.
func ParsePalette(values []string) ([]Color, error) {
	out := make([]Color, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !strings.HasPrefix(v, "#") {
			v = "#" + v
		}
		rgb, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", v, err)
		}
		out = append(out, Color(rgb.Hex()))
	}
	if len(out) == 0 {
		return nil, ErrEmptyPalette
	}
	return out, nil
}

// Source supplies uniform random integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Picker selects theme tokens uniformly from a fixed palette.
type Picker struct {
	palette []Color
	rng     Source
}

// New builds a Picker over palette. A nil r uses the process-wide generator.
func New(palette []Color, r Source) (*Picker, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if r == nil {
		r = globalSource{}
	}
	p := make([]Color, len(palette))
	copy(p, palette)
	return &Picker{palette: p, rng: r}, nil
}

// Default returns a Picker over DefaultPalette.
func Default(r Source) *Picker {
	p, _ := New(DefaultPalette, r)
	return p
}

// Next returns a random token from the palette.
func (p *Picker) Next() Color {
	return p.palette[p.rng.IntN(len(p.palette))]
}

// Palette returns a copy of the picker's colors.
func (p *Picker) Palette() []Color {
	out := make([]Color, len(p.palette))
	copy(out, p.palette)
	return out
}

// Contains reports whether c is one of the picker's colors.
func (p *Picker) Contains(c Color) bool {
	for _, pc := range p.palette {
		if pc == c {
			return true
		}
	}
	return false
}
