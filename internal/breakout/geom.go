package breakout

import "golang.org/x/exp/constraints"

type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

func (r Rect) Right() float32 {
	return r.X + r.Width
}

func (r Rect) Bottom() float32 {
	return r.Y + r.Height
}

// CircleRectOverlap reports whether the circle at c with radius r touches rect.
// Touching edges count as an overlap.
func CircleRectOverlap(c Vector, r float32, rect Rect) bool {
	nx := Clamp(c.X, rect.X, rect.Right())
	ny := Clamp(c.Y, rect.Y, rect.Bottom())
	dx := c.X - nx
	dy := c.Y - ny
	return dx*dx+dy*dy <= r*r
}

// Clamp restricts v to [lo, hi]. If hi < lo, lo wins.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
