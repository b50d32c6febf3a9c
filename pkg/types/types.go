package types

import "image"

// Box represents a normalized bounding box with coordinates in [0,1] range
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Empty reports whether the box has no area
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// ToRect maps the box onto pixel coordinates within bounds. Coordinates
// are clamped to [0,1] first.
func (b Box) ToRect(bounds image.Rectangle) image.Rectangle {
	fw, fh := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := bounds.Min.X + int(clamp(b.X, 0, 1)*fw+0.5)
	y0 := bounds.Min.Y + int(clamp(b.Y, 0, 1)*fh+0.5)
	x1 := bounds.Min.X + int(clamp(b.X+b.W, 0, 1)*fw+0.5)
	y1 := bounds.Min.Y + int(clamp(b.Y+b.H, 0, 1)*fh+0.5)
	return image.Rect(x0, y0, x1, y1).Intersect(bounds)
}

// BoxFromRect normalizes a pixel rectangle against bounds
func BoxFromRect(r, bounds image.Rectangle) Box {
	fw, fh := float64(bounds.Dx()), float64(bounds.Dy())
	if fw == 0 || fh == 0 {
		return Box{}
	}
	return Box{
		X: float64(r.Min.X-bounds.Min.X) / fw,
		Y: float64(r.Min.Y-bounds.Min.Y) / fh,
		W: float64(r.Dx()) / fw,
		H: float64(r.Dy()) / fh,
	}
}

// FaceReport is one face as described by a vision model
type FaceReport struct {
	Box         Box                `json:"box"`
	Expressions map[string]float64 `json:"expressions"`
}

// ExpressionReport is the parsed answer of a vision model asked for face
// expressions. Zero faces means none were found.
type ExpressionReport struct {
	Faces []FaceReport `json:"faces"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
