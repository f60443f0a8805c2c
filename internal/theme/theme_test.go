package theme

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNewRejectsEmptyPalette(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("New(nil) error = %v, want ErrEmptyPalette", err)
	}
}

func TestNextStaysInPalette(t *testing.T) {
	p := Default(rand.New(rand.NewPCG(1, 1)))
	seen := map[Color]bool{}
	for range 2000 {
		c := p.Next()
		if !p.Contains(c) {
			t.Fatalf("Next() = %q, not in palette", c)
		}
		seen[c] = true
	}
	if len(seen) != len(DefaultPalette) {
		t.Fatalf("expected every palette color to be drawn, saw %d of %d", len(seen), len(DefaultPalette))
	}
}

func TestSingleColorPalette(t *testing.T) {
	p, err := New([]Color{"#112233"}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for range 10 {
		if got := p.Next(); got != "#112233" {
			t.Fatalf("Next() = %q, want #112233", got)
		}
	}
}

func TestPaletteIsCopied(t *testing.T) {
	src := []Color{"#000000", "#ffffff"}
	p, err := New(src, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	src[0] = "#abcdef"
	if p.Contains("#abcdef") {
		t.Fatal("picker should not alias the caller's slice")
	}
}

func TestParsePalette(t *testing.T) {
	got, err := ParsePalette([]string{" #1F3A5F ", "8fcb9b", ""})
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}
	want := []Color{"#1f3a5f", "#8fcb9b"}
	if len(got) != len(want) {
		t.Fatalf("ParsePalette() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParsePalette()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParsePaletteErrors(t *testing.T) {
	if _, err := ParsePalette([]string{"", "  "}); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("ParsePalette(blank) error = %v, want ErrEmptyPalette", err)
	}
	if _, err := ParsePalette([]string{"#zzzzzz"}); err == nil {
		t.Fatal("expected error for invalid hex color")
	}
}

func TestColorRGB(t *testing.T) {
	r, g, b := Color("#ff0000").RGB().RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("RGB() = %d,%d,%d, want 255,0,0", r, g, b)
	}
	if Color("nope").RGB() != Color("#000000").RGB() {
		t.Fatal("invalid token should resolve to black")
	}
}
