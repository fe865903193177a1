// Package textavatar renders placeholder avatar graphics: a filled
// shape with a short centered text such as a user's initials.
package textavatar

import (
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Opacity describes how a drawable covers the pixels inside its bounds.
type Opacity int

const (
	OpacityOpaque Opacity = iota
	OpacityTransparent
	OpacityTranslucent
)

// ColorFilter transforms the text color before drawing.
type ColorFilter func(color.Color) color.Color

// Drawable paints a filled, optionally bordered shape with one line of
// centered text. It is immutable after construction apart from the
// alpha and color filter forwarded to the text paint; all derived
// values are recomputed per Render call from the bounds, so the same
// drawable can be reused across differently sized surfaces.
type Drawable struct {
	shape        Shape
	text         string
	fill         uint32
	fillOverride *color.RGBA
	textColor    uint32
	bold         bool
	fontFamily   string
	fontSize     int
	width        int
	height       int
	border       int
	fonts        *FontCache

	alpha  uint8
	filter ColorFilter
}

// Render paints the drawable onto dc inside bounds. Width, height and
// font size left at -1 derive from the bounds; explicit values pin the
// layout regardless of the bounds passed.
func (d *Drawable) Render(dc *gg.Context, bounds image.Rectangle) error {
	if dc == nil {
		return errors.New("nil render context")
	}

	bx, by := float64(bounds.Min.X), float64(bounds.Min.Y)
	bw, bh := float64(bounds.Dx()), float64(bounds.Dy())

	fill := rgbColor(d.fill)
	if d.fillOverride != nil {
		fill = *d.fillOverride
	}
	dc.SetColor(fill)
	d.outline(dc, bx, by, bw, bh)
	dc.Fill()

	// Border shade derives from the packed fill value even when a
	// string override replaced the fill itself.
	if d.border > 0 {
		inset := float64(d.border) / 2
		dc.SetColor(darkerShade(d.fill))
		dc.SetLineWidth(float64(d.border))
		d.outline(dc, bx+inset, by+inset, bw-2*inset, bh-2*inset)
		dc.Stroke()
	}

	w := d.width
	if w < 0 {
		w = bounds.Dx()
	}
	h := d.height
	if h < 0 {
		h = bounds.Dy()
	}
	fontSize := d.fontSize
	if fontSize < 0 {
		fontSize = min(w, h) / 2
	}

	face, boldFace := d.fonts.Face(d.fontFamily, fontSize, d.bold)
	dc.SetColor(d.textPaint())

	// Faces out of the cache are shared across drawables and are not
	// safe for concurrent glyph drawing; hold the cache's draw lock
	// from metrics through the draws.
	d.fonts.drawMutex.Lock()
	defer d.fonts.drawMutex.Unlock()

	dc.SetFontFace(face)

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64

	x := bx + float64(w)/2
	y := by + float64(h)/2 + (ascent-descent)/2

	dc.DrawStringAnchored(d.text, x, y, 0.5, 0)
	if d.bold && !boldFace {
		// No bold variant on this system and no synthetic bold in gg;
		// a half-pixel double draw thickens the glyphs the same way
		// fake-bold text paints do.
		dc.DrawStringAnchored(d.text, x+0.6, y, 0.5, 0)
	}

	return nil
}

// outline traces the shape path for the given rectangle without
// filling or stroking it.
func (d *Drawable) outline(dc *gg.Context, x, y, w, h float64) {
	switch s := d.shape.(type) {
	case Oval:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case RoundRect:
		dc.DrawRoundedRectangle(x, y, w, h, s.Radius)
	default:
		dc.DrawRectangle(x, y, w, h)
	}
}

func (d *Drawable) textPaint() color.Color {
	var c color.Color = color.NRGBA{
		R: uint8(d.textColor >> 16),
		G: uint8(d.textColor >> 8),
		B: uint8(d.textColor),
		A: d.alpha,
	}
	if d.filter != nil {
		c = d.filter(c)
	}
	return c
}

// SetAlpha adjusts the alpha of the text paint.
func (d *Drawable) SetAlpha(alpha uint8) {
	d.alpha = alpha
}

// SetColorFilter installs a filter applied to the text color at render
// time. A nil filter removes it.
func (d *Drawable) SetColorFilter(filter ColorFilter) {
	d.filter = filter
}

// Opacity always reports translucent: the text and border never cover
// every pixel of the bounds.
func (d *Drawable) Opacity() Opacity {
	return OpacityTranslucent
}

// IntrinsicWidth reports the configured width, or -1 when the drawable
// sizes itself from the bounds.
func (d *Drawable) IntrinsicWidth() int {
	return d.width
}

// IntrinsicHeight reports the configured height, or -1 when the
// drawable sizes itself from the bounds.
func (d *Drawable) IntrinsicHeight() int {
	return d.height
}

// Text reports the rendered text, after any upper-casing applied at
// build time.
func (d *Drawable) Text() string {
	return d.text
}

// Shape reports the configured shape variant.
func (d *Drawable) Shape() Shape {
	return d.shape
}

// FillColor reports the packed 0xRRGGBB fill color. When a string
// override was supplied at build time the override is what gets
// painted; this still reports the packed value the border shade is
// derived from.
func (d *Drawable) FillColor() uint32 {
	return d.fill
}
