// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"math"
)

// Viewport maps a region of primitive space onto a region of the target.
//
// Geometry is translated by DestinationOrigin - SourceOrigin and clipped to
// the destination rectangle. A viewport with a zero size does not clip.
type Viewport struct {
	sourceOrigin      Vec2
	destinationOrigin Vec2
	size              Vec2
	synced            bool
}

// SourceOrigin returns the top-left of the visible region in primitive space.
func (v *Viewport) SourceOrigin() Vec2 { return v.sourceOrigin }

// SetSourceOrigin sets the top-left of the visible region in primitive space.
func (v *Viewport) SetSourceOrigin(origin Vec2) {
	if v.sourceOrigin != origin {
		v.sourceOrigin = origin
		v.synced = false
	}
}

// DestinationOrigin returns where SourceOrigin appears on the target.
func (v *Viewport) DestinationOrigin() Vec2 { return v.destinationOrigin }

// SetDestinationOrigin sets where SourceOrigin appears on the target.
func (v *Viewport) SetDestinationOrigin(origin Vec2) {
	if v.destinationOrigin != origin {
		v.destinationOrigin = origin
		v.synced = false
	}
}

// Size returns the extent of the viewport.
func (v *Viewport) Size() Vec2 { return v.size }

// SetSize sets the extent of the viewport.
func (v *Viewport) SetSize(size Vec2) {
	if v.size != size {
		v.size = size
		v.synced = false
	}
}

// offset returns the translation from primitive space to target space.
func (v *Viewport) offset() Vec2 {
	return v.destinationOrigin.Sub(v.sourceOrigin)
}

// clip returns the destination rectangle in whole pixels, or bounds when
// the viewport has no size.
func (v *Viewport) clip(bounds image.Rectangle) image.Rectangle {
	if v.size.X <= 0 || v.size.Y <= 0 {
		return bounds
	}
	r := image.Rect(
		int(math.Floor(float64(v.destinationOrigin.X))),
		int(math.Floor(float64(v.destinationOrigin.Y))),
		int(math.Ceil(float64(v.destinationOrigin.X+v.size.X))),
		int(math.Ceil(float64(v.destinationOrigin.Y+v.size.Y))),
	)
	return r.Intersect(bounds)
}
