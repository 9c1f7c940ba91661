package model

// Point represents a position in viewport coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size represents a measured width and height.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Rect is an axis-aligned box in viewport coordinates. It is a snapshot of an
// element's geometry; Right and Bottom are always Left+Width and Top+Height
// when built with NewRect.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{
		Left:   x,
		Top:    y,
		Right:  x + w,
		Bottom: y + h,
		Width:  w,
		Height: h,
	}
}

// RectAt builds the box of the given size whose top-left corner is p.
func RectAt(p Point, s Size) Rect {
	return NewRect(p.X, p.Y, s.Width, s.Height)
}

func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Point{X: r.CenterX(), Y: r.CenterY()}
}

// Size returns the box dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether o lies entirely inside r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top && o.Right <= r.Right && o.Bottom <= r.Bottom
}

// Normalized recomputes Right and Bottom from Left/Top and Width/Height.
// Imported or hand-written rectangles may only carry one of the two forms.
func (r Rect) Normalized() Rect {
	if r.Width == 0 && r.Right > r.Left {
		r.Width = r.Right - r.Left
	}
	if r.Height == 0 && r.Bottom > r.Top {
		r.Height = r.Bottom - r.Top
	}
	return NewRect(r.Left, r.Top, r.Width, r.Height)
}
