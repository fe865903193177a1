package main

import (
	"image"
	"net/url"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"textavatar"
)

// avatarParams carries everything needed to render one avatar. It is
// filled from HTTP query values, preview socket messages or CLI flags;
// zero fields fall back to the service config.
type avatarParams struct {
	Text   string `json:"text"`
	Shape  string `json:"shape,omitempty"`
	Size   int    `json:"size,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	// Radius nil means "derive from size"; an explicit 0 is a sharp
	// rounded-rect.
	Radius    *float64 `json:"radius,omitempty"`
	Color     string   `json:"color,omitempty"`
	TextColor string   `json:"text_color,omitempty"`
	Border    int      `json:"border,omitempty"`
	Font      string   `json:"font,omitempty"`
	FontSize  int      `json:"font_size,omitempty"`
	Bold      bool     `json:"bold,omitempty"`
	Upper     bool     `json:"upper,omitempty"`
}

func paramsFromQuery(text string, q url.Values) avatarParams {
	p := avatarParams{
		Text:      text,
		Shape:     q.Get("shape"),
		Size:      atoiDefault(q.Get("size"), 0),
		Width:     atoiDefault(q.Get("w"), 0),
		Height:    atoiDefault(q.Get("h"), 0),
		Color:     q.Get("color"),
		TextColor: q.Get("text_color"),
		Border:    atoiDefault(q.Get("border"), 0),
		Font:      q.Get("font"),
		FontSize:  atoiDefault(q.Get("font_size"), 0),
		Bold:      boolParam(q.Get("bold")),
		Upper:     boolParam(q.Get("upper")),
	}
	if s := q.Get("radius"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			p.Radius = &v
		}
	}
	return p
}

func (p avatarParams) withDefaults(config *ServiceConfig) avatarParams {
	if p.Size <= 0 {
		p.Size = config.GetSize()
	}
	if p.Shape == "" {
		p.Shape = config.GetShape()
	}
	if p.Color == "" {
		p.Color = config.PickColor(p.Text)
	}
	if p.TextColor == "" {
		p.TextColor = config.TextColor
	}
	if p.Font == "" {
		p.Font = config.FontFamily
	}
	if p.Border == 0 {
		p.Border = config.Border
	}
	if p.Radius == nil {
		radius := float64(p.Size) / 8
		p.Radius = &radius
	}
	p.Bold = p.Bold || config.Bold
	p.Upper = p.Upper || config.UpperCase
	return p
}

// buildAvatar assembles a drawable through the staged builder. Color
// strings that fail to parse surface as *textavatar.ColorParseError.
func buildAvatar(config *ServiceConfig, p avatarParams) (*textavatar.Drawable, error) {
	p = p.withDefaults(config)

	cfg := textavatar.New().BeginConfig()
	if p.TextColor != "" {
		c, err := textavatar.ParseColor(p.TextColor)
		if err != nil {
			return nil, err
		}
		cfg = cfg.TextColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
	}
	if p.Border > 0 {
		cfg = cfg.WithBorder(p.Border)
	}
	if p.Font != "" {
		cfg = cfg.UseFont(p.Font)
	}
	if p.FontSize > 0 {
		cfg = cfg.FontSize(p.FontSize)
	}
	if p.Bold {
		cfg = cfg.Bold()
	}
	if p.Upper {
		cfg = cfg.ToUpperCase()
	}

	var stage textavatar.BuildStage
	switch p.Shape {
	case "rect":
		stage = cfg.EndConfig().Rect()
	case "roundrect":
		stage = cfg.EndConfig().RoundRect(*p.Radius)
	default:
		stage = cfg.EndConfig().Round()
	}

	return stage.BuildHex(p.Text, p.Color)
}

func renderAvatar(config *ServiceConfig, p avatarParams) (image.Image, error) {
	d, err := buildAvatar(config, p)
	if err != nil {
		return nil, err
	}

	p = p.withDefaults(config)
	w, h := p.Size, p.Size
	if p.Width > 0 {
		w = p.Width
	}
	if p.Height > 0 {
		h = p.Height
	}

	dc := gg.NewContext(w, h)
	if err := d.Render(dc, image.Rect(0, 0, w, h)); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func boolParam(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
