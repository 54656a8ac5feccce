// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

type kernKey struct {
	first, second rune
	size          int
}

// shapedKerner derives pair kerning from HarfBuzz shaping.
//
// The kerning of (a, b) is the difference between a's advance when shaped
// as part of the pair and its advance when shaped alone. Results are
// memoized because shaping is far more expensive than a table lookup.
type shapedKerner struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	memo   map[kernKey]float32
}

func newShapedKerner(data []byte) (*shapedKerner, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &shapedKerner{
		face: face,
		memo: make(map[kernKey]float32),
	}, nil
}

func (k *shapedKerner) kern(first, second rune, size int) float32 {
	key := kernKey{first: first, second: second, size: size}
	if v, ok := k.memo[key]; ok {
		return v
	}

	var v float32
	pair := k.shape([]rune{first, second}, size)
	single := k.shape([]rune{first}, size)
	// A ligature collapses the pair into one glyph; there is nothing to kern.
	if len(pair) == 2 && len(single) == 1 {
		v = float32(pair[0].Advance-single[0].Advance) / 64
	}

	k.memo[key] = v
	return v
}

func (k *shapedKerner) shape(runes []rune, size int) []shaping.Glyph {
	out := k.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      k.face,
		Size:      fixed.I(size),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}
