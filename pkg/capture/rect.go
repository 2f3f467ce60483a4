package capture

import "math"

// Rect is an axis-aligned rectangle in pixel space with a top-left origin.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns the rectangle's area in square pixels.
func (r Rect) Area() float64 { return r.Width * r.Height }

// MaxDimension returns the larger of width and height.
func (r Rect) MaxDimension() float64 { return math.Max(r.Width, r.Height) }

// MinDimension returns the smaller of width and height.
func (r Rect) MinDimension() float64 { return math.Min(r.Width, r.Height) }

// AspectRatio returns width divided by height, or 0 when height is zero.
func (r Rect) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return r.Width / r.Height
}

// ContainsWithin reports whether other fits inside r when every edge is
// allowed to overhang by at most eps pixels.
func (r Rect) ContainsWithin(other Rect, eps float64) bool {
	return other.X >= r.X-eps &&
		other.Y >= r.Y-eps &&
		other.Right() <= r.Right()+eps &&
		other.Bottom() <= r.Bottom()+eps
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// UnionOf returns the bounding union of rects, or the zero Rect when rects
// is empty.
func UnionOf(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	return u
}

// EdgeDistance returns the largest absolute per-edge offset between r and
// other. A value of 0 means the rectangles coincide exactly.
func (r Rect) EdgeDistance(other Rect) float64 {
	d := math.Abs(r.X - other.X)
	d = math.Max(d, math.Abs(r.Y-other.Y))
	d = math.Max(d, math.Abs(r.Right()-other.Right()))
	d = math.Max(d, math.Abs(r.Bottom()-other.Bottom()))
	return d
}

// OverlapsVertically reports whether the y ranges of r and other intersect.
func (r Rect) OverlapsVertically(other Rect) bool {
	return r.Y < other.Bottom() && other.Y < r.Bottom()
}
