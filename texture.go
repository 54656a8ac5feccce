// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"

	"github.com/gogpu/ggui/atlas"
)

// Texture refers to an image stored in the renderer's atlas. It owns no
// pixels. The zero Texture is the placeholder returned for images that
// could not be stored; sprites built from it draw nothing.
type Texture struct {
	// Offset is the image's position on the atlas strip.
	Offset image.Point
	// Size is the image's dimensions in pixels.
	Size image.Point
}

// IsEmpty reports whether t is the placeholder texture.
func (t Texture) IsEmpty() bool {
	return t.Size.X <= 0 || t.Size.Y <= 0
}

func textureFromHandle(h atlas.Handle) Texture {
	if h.IsEmpty() {
		return Texture{}
	}
	return Texture{Offset: h.Offset, Size: h.Size}
}
