// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster fills indexed, textured and vertex-colored triangles into
// RGBA images.
//
// It is the CPU path used when a renderer draws into a plain pixel buffer.
// Coverage is sampled once per pixel at its center with a tie-break rule
// that assigns each pixel on a shared edge to exactly one of the two
// triangles, so the two halves of a quad never blend twice.
//
// Colors are premultiplied throughout. Texture lookups use nearest-neighbor
// sampling with texel coordinates in pixels, clamped to the texture bounds.
package raster
