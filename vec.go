// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "math"

// Vec2 is a 2D position or displacement in pixels.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normalize returns a unit vector in the same direction.
// Returns zero vector if the original vector has zero length.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Perp returns the vector rotated a quarter turn, (-Y, X).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Snap rounds both components to the nearest whole pixel, halves up.
func (v Vec2) Snap() Vec2 {
	return Vec2{X: snap(v.X), Y: snap(v.Y)}
}

func snap(x float32) float32 {
	return float32(math.Floor(float64(x) + 0.5))
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// R is a convenience function to create a Rect.
func R(left, top, width, height float32) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// Position returns the top-left corner.
func (r Rect) Position() Vec2 {
	return Vec2{X: r.Left, Y: r.Top}
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width, Y: r.Height}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Left + r.Width, Y: r.Top + r.Height}
}

// IsZero reports whether every field is zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
