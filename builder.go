package textavatar

import (
	"image/color"
	"strings"
)

// options collects every builder field before it is frozen into a
// Drawable.
type options struct {
	shape        Shape
	fill         uint32
	fillOverride *color.RGBA
	textColor    uint32
	border       int
	width        int
	height       int
	fontFamily   string
	fontSize     int
	bold         bool
	upper        bool
	fonts        *FontCache
}

func defaultOptions() options {
	return options{
		shape:      Rect{},
		fill:       0x808080,
		textColor:  0xffffff,
		width:      -1,
		height:     -1,
		fontSize:   -1,
		fontFamily: DefaultFontFamily,
		fonts:      defaultFontCache,
	}
}

// ShapeBuilder is the entry stage of the fluent builder: pick a shape,
// enter the config stage, or jump straight to one of the build
// conveniences. Stages are passed by value, so a builder can be reused
// as a template without the later stages writing back into it.
type ShapeBuilder struct {
	opts options
}

// New starts a builder with the stock defaults: gray rectangle, white
// text, no border, auto width, height and font size.
func New() ShapeBuilder {
	return ShapeBuilder{opts: defaultOptions()}
}

// BeginConfig enters the config stage.
func (b ShapeBuilder) BeginConfig() ConfigBuilder {
	return ConfigBuilder{opts: b.opts}
}

// Rect selects a plain rectangle.
func (b ShapeBuilder) Rect() BuildStage {
	b.opts.shape = Rect{}
	return BuildStage{opts: b.opts}
}

// Round selects an oval inscribed in the bounds.
func (b ShapeBuilder) Round() BuildStage {
	b.opts.shape = Oval{}
	return BuildStage{opts: b.opts}
}

// RoundRect selects a rectangle with the given corner radius.
func (b ShapeBuilder) RoundRect(radius float64) BuildStage {
	b.opts.shape = RoundRect{Radius: radius}
	return BuildStage{opts: b.opts}
}

// BuildRect is shorthand for Rect().Build(text, fill).
func (b ShapeBuilder) BuildRect(text string, fill uint32) *Drawable {
	return b.Rect().Build(text, fill)
}

// BuildRound is shorthand for Round().Build(text, fill).
func (b ShapeBuilder) BuildRound(text string, fill uint32) *Drawable {
	return b.Round().Build(text, fill)
}

// BuildRoundRect is shorthand for RoundRect(radius).Build(text, fill).
func (b ShapeBuilder) BuildRoundRect(text string, fill uint32, radius float64) *Drawable {
	return b.RoundRect(radius).Build(text, fill)
}

// ConfigBuilder sets the optional styling fields. Every setter returns
// the stage so calls chain; EndConfig returns to the shape stage.
type ConfigBuilder struct {
	opts options
}

// Width pins the intrinsic width in pixels. Negative values restore
// bounds-derived sizing.
func (c ConfigBuilder) Width(px int) ConfigBuilder {
	c.opts.width = px
	return c
}

// Height pins the intrinsic height in pixels. Negative values restore
// bounds-derived sizing.
func (c ConfigBuilder) Height(px int) ConfigBuilder {
	c.opts.height = px
	return c
}

// TextColor sets the text color as packed 0xRRGGBB.
func (c ConfigBuilder) TextColor(rgb uint32) ConfigBuilder {
	c.opts.textColor = rgb
	return c
}

// WithBorder enables a stroked outline of the given thickness, drawn
// in a darker shade of the fill color.
func (c ConfigBuilder) WithBorder(thickness int) ConfigBuilder {
	c.opts.border = thickness
	return c
}

// UseFont selects the font family for the text.
func (c ConfigBuilder) UseFont(family string) ConfigBuilder {
	c.opts.fontFamily = family
	return c
}

// UseFontCache swaps the font cache used to resolve faces, for hosts
// that manage their own fonts.
func (c ConfigBuilder) UseFontCache(fonts *FontCache) ConfigBuilder {
	if fonts != nil {
		c.opts.fonts = fonts
	}
	return c
}

// FontSize pins the font size in pixels. Negative values restore the
// min(width,height)/2 derivation.
func (c ConfigBuilder) FontSize(px int) ConfigBuilder {
	c.opts.fontSize = px
	return c
}

// Bold draws the text bold.
func (c ConfigBuilder) Bold() ConfigBuilder {
	c.opts.bold = true
	return c
}

// ToUpperCase upper-cases the text once at build time.
func (c ConfigBuilder) ToUpperCase() ConfigBuilder {
	c.opts.upper = true
	return c
}

// EndConfig returns to the shape stage.
func (c ConfigBuilder) EndConfig() ShapeBuilder {
	return ShapeBuilder{opts: c.opts}
}

// BuildStage supplies the two required fields, text and fill color,
// and freezes the configuration into an immutable Drawable.
type BuildStage struct {
	opts options
}

// Build constructs the drawable with a packed 0xRRGGBB fill color. It
// never fails.
func (b BuildStage) Build(text string, fill uint32) *Drawable {
	b.opts.fill = fill
	return newDrawable(b.opts, text)
}

// BuildHex constructs the drawable with a fill given as a color
// string such as "#2ecc71" or "navy". An unrecognized string yields a
// *ColorParseError and no drawable.
func (b BuildStage) BuildHex(text, spec string) (*Drawable, error) {
	parsed, err := ParseColor(spec)
	if err != nil {
		return nil, err
	}
	b.opts.fillOverride = &parsed
	return newDrawable(b.opts, text), nil
}

func newDrawable(opts options, text string) *Drawable {
	if opts.upper {
		text = strings.ToUpper(text)
	}
	return &Drawable{
		shape:        opts.shape,
		text:         text,
		fill:         opts.fill,
		fillOverride: opts.fillOverride,
		textColor:    opts.textColor,
		bold:         opts.bold,
		fontFamily:   opts.fontFamily,
		fontSize:     opts.fontSize,
		width:        opts.width,
		height:       opts.height,
		border:       opts.border,
		fonts:        opts.fonts,
		alpha:        0xff,
	}
}
