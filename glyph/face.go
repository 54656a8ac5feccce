// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import "image"

// Glyph describes one character rendered into a face's glyph sheet.
type Glyph struct {
	// Bounds of the glyph relative to the pen position on the baseline.
	// Min.Y is negative for glyphs rising above the baseline.
	Bounds image.Rectangle

	// TextureRect is the glyph's location inside the glyph sheet.
	TextureRect image.Rectangle

	// Advance is the horizontal pen advance in pixels.
	Advance float32
}

// Face is the host font facility.
//
// Implementations rasterize glyphs on demand into an internally managed
// glyph sheet per pixel size. A glyph returned by Glyph must be resident in
// the sheet returned by any later Sheet call for the same size, at the
// reported TextureRect.
type Face interface {
	// ID identifies the face. Two faces with the same ID must produce
	// identical sheets.
	ID() uint64

	// Glyph returns the metrics of r at size, rasterizing it if needed.
	Glyph(r rune, size int, bold bool) Glyph

	// Kerning returns the horizontal adjustment between first and second.
	Kerning(first, second rune, size int) float32

	// LineHeight returns the distance between consecutive baselines.
	LineHeight(size int) float32

	// Sheet returns a copy of the glyph sheet for size.
	Sheet(size int) *image.RGBA
}
