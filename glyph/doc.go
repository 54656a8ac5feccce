// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glyph caches pre-rendered glyph sheets inside the texture atlas.
//
// A Face is the host font facility: it rasterizes glyphs lazily into its own
// glyph sheet and reports metrics and kerning. Cache.Load forces a fixed
// codepoint range (0 through PreloadEnd-1, covering Latin, Latin Extended,
// combining diacritics and the IPA block) to be resident before the sheet is
// copied into the atlas, so text over that range never references a glyph
// that is missing from the atlased copy.
//
// OpenTypeFace is the bundled Face implementation built on
// golang.org/x/image/font/opentype. WithShapedKerning switches its kerning
// to HarfBuzz pair shaping from go-text/typesetting, which honours GPOS
// kerning that the legacy kern table lookup misses.
package glyph
