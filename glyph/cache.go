// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggui/atlas"
)

// PreloadEnd is one past the last codepoint forced into a glyph sheet
// before it is atlased.
const PreloadEnd rune = 0x370

// Key identifies a cached glyph sheet.
type Key struct {
	FaceID uint64
	Size   int
}

// Cache maps (face, size) pairs to glyph sheets stored in an atlas.
type Cache struct {
	atlas   *atlas.Atlas
	logger  *slog.Logger
	entries map[Key]atlas.Handle
	late    map[Key]map[rune]struct{}
}

// NewCache creates a cache that stores sheets in a.
// A nil logger discards diagnostics.
func NewCache(a *atlas.Atlas, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		atlas:   a,
		logger:  logger,
		entries: make(map[Key]atlas.Handle),
		late:    make(map[Key]map[rune]struct{}),
	}
}

// Load returns the atlas offset of the glyph sheet for face at size.
//
// On the first call for a (face, size) pair every codepoint below
// PreloadEnd is rendered, the sheet is copied into the atlas and the
// resulting handle is cached. Later calls return the cached offset without
// touching the atlas.
func (c *Cache) Load(face Face, size int) image.Point {
	key := Key{FaceID: face.ID(), Size: size}
	if h, ok := c.entries[key]; ok {
		return h.Offset
	}

	for r := rune(0); r < PreloadEnd; r++ {
		face.Glyph(r, size, false)
	}

	sheet := face.Sheet(size)
	h := c.atlas.Load(sheet)
	if h.IsEmpty() {
		c.logger.Warn("glyph: sheet could not be atlased",
			"face", key.FaceID, "size", size,
			"width", sheet.Bounds().Dx(), "height", sheet.Bounds().Dy())
	}

	c.entries[key] = h
	c.logger.Debug("glyph: sheet cached", "face", key.FaceID, "size", size, "offset", h.Offset.Y)
	return h.Offset
}

// Handle returns the cached handle for face at size, if any.
func (c *Cache) Handle(face Face, size int) (atlas.Handle, bool) {
	h, ok := c.entries[Key{FaceID: face.ID(), Size: size}]
	return h, ok
}

// Len returns the number of cached sheets.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Extend rasterizes the runes at or above PreloadEnd that face has not
// drawn for size yet, then copies the atlased part of the sheet back into
// the atlas. Late glyphs that landed inside the cached rectangle become
// visible; glyphs placed below it stay outside the sheet. Extend reports
// whether the atlas was updated. The sheet must already be loaded.
func (c *Cache) Extend(face Face, size int, runes []rune) bool {
	key := Key{FaceID: face.ID(), Size: size}
	h, ok := c.entries[key]
	if !ok || h.IsEmpty() {
		return false
	}

	seen := c.late[key]
	fresh := 0
	for _, r := range runes {
		if r < PreloadEnd {
			continue
		}
		if _, done := seen[r]; done {
			continue
		}
		if seen == nil {
			seen = make(map[rune]struct{})
			c.late[key] = seen
		}
		seen[r] = struct{}{}
		face.Glyph(r, size, false)
		fresh++
	}
	if fresh == 0 {
		return false
	}

	sheet := face.Sheet(size)
	region := image.NewRGBA(image.Rectangle{Max: h.Size})
	draw.Draw(region, region.Bounds(), sheet, sheet.Bounds().Min, draw.Src)
	if !c.atlas.Update(h.Offset, region) {
		return false
	}
	c.logger.Debug("glyph: sheet refreshed", "face", key.FaceID, "size", size, "glyphs", fresh)
	return true
}
