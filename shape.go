package textavatar

// Shape selects the fill and border outline family of a drawable.
// The zero-value Rect is the default.
type Shape interface {
	shapeName() string
}

// Rect is a plain rectangle filling the whole bounds.
type Rect struct{}

// Oval is an ellipse inscribed in the bounds.
type Oval struct{}

// RoundRect is a rectangle with rounded corners.
type RoundRect struct {
	Radius float64
}

func (Rect) shapeName() string      { return "rect" }
func (Oval) shapeName() string      { return "oval" }
func (RoundRect) shapeName() string { return "roundrect" }
