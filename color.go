package textavatar

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// shadeFactor is applied per RGB channel to derive the border color
// from the fill color.
const shadeFactor = 0.9

// ColorParseError reports a color string that does not match any
// recognized color encoding.
type ColorParseError struct {
	Spec string
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("unknown color %q", e.Spec)
}

// namedColors mirrors the palette accepted by common color parsers.
var namedColors = map[string]color.RGBA{
	"black":     {0x00, 0x00, 0x00, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"red":       {0xff, 0x00, 0x00, 0xff},
	"green":     {0x00, 0xff, 0x00, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"gray":      {0x88, 0x88, 0x88, 0xff},
	"grey":      {0x88, 0x88, 0x88, 0xff},
	"lightgray": {0xcc, 0xcc, 0xcc, 0xff},
	"lightgrey": {0xcc, 0xcc, 0xcc, 0xff},
	"darkgray":  {0x44, 0x44, 0x44, 0xff},
	"darkgrey":  {0x44, 0x44, 0x44, 0xff},
	"aqua":      {0x00, 0xff, 0xff, 0xff},
	"fuchsia":   {0xff, 0x00, 0xff, 0xff},
	"lime":      {0x00, 0xff, 0x00, 0xff},
	"maroon":    {0x80, 0x00, 0x00, 0xff},
	"navy":      {0x00, 0x00, 0x80, 0xff},
	"olive":     {0x80, 0x80, 0x00, 0xff},
	"purple":    {0x80, 0x00, 0x80, 0xff},
	"silver":    {0xc0, 0xc0, 0xc0, 0xff},
	"teal":      {0x00, 0x80, 0x80, 0xff},
}

// ParseColor converts a color string to a color.RGBA. Accepted forms
// are "#RRGGBB", "#AARRGGBB" and the named colors above (case
// insensitive). Anything else yields a *ColorParseError.
func ParseColor(spec string) (color.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(spec)]; ok {
		return c, nil
	}

	if len(spec) > 0 && spec[0] == '#' {
		hex := spec[1:]
		switch len(hex) {
		case 6:
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return color.RGBA{
					R: uint8(v >> 16),
					G: uint8(v >> 8),
					B: uint8(v),
					A: 0xff,
				}, nil
			}
		case 8:
			// The digits are straight alpha; color.RGBA stores
			// premultiplied channels, so convert rather than pack.
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				nrgba := color.NRGBA{
					R: uint8(v >> 16),
					G: uint8(v >> 8),
					B: uint8(v),
					A: uint8(v >> 24),
				}
				return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
			}
		}
	}

	return color.RGBA{}, &ColorParseError{Spec: spec}
}

// rgbColor expands a packed 0xRRGGBB value to an opaque color.RGBA.
func rgbColor(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}
}

// darkerShade derives the border color from a packed fill color by
// scaling each channel with shadeFactor, truncated to integer.
func darkerShade(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(shadeFactor * float64(uint8(rgb>>16))),
		G: uint8(shadeFactor * float64(uint8(rgb>>8))),
		B: uint8(shadeFactor * float64(uint8(rgb))),
		A: 0xff,
	}
}
