package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
)

// ErrInvalidColor is returned for colour strings that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

var namedColors = map[string]gg.RGBA{
	"black":  gg.Black,
	"white":  gg.White,
	"red":    gg.RGB(1, 0, 0),
	"green":  gg.RGB(0, 1, 0),
	"blue":   gg.RGB(0, 0, 1),
	"yellow": gg.RGB(1, 1, 0),
	"gray":   gg.RGB(0.5, 0.5, 0.5),
}

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and a few colour names.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return gg.Hex(hex), nil
}

// MustParseColor is ParseColor for constants; it panics on bad input.
func MustParseColor(s string) gg.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
