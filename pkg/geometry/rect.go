// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the rectangle's area, or 0 for degenerate rectangles.
func (r RectInt) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// ClipTo clips the rectangle to the area [0,0)-(width,height).
// A rectangle entirely outside the area clips to a zero-area rectangle.
func (r RectInt) ClipTo(width, height int) RectInt {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height

	if x0 < 0 {
		x0 = 0
	}
	if x0 > width {
		x0 = width
	}
	if y0 < 0 {
		y0 = 0
	}
	if y0 > height {
		y0 = height
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}

	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r RectInt) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ToImageRect converts to the standard library's image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}
