// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ggui/glyph"
)

// tabSpaces is the width of a tab in spaces, and the height of a vertical
// tab in lines.
const tabSpaces = 2

// TextRun is a run of text in one face, size and color.
type TextRun struct {
	Text     string
	Face     glyph.Face
	Size     int
	Position Vec2
	Color    RGBA
}

// CreateText lays out run and registers it as one primitive.
//
// The pen starts at Position moved down by Size, snapped to whole pixels,
// and advances by glyph advance plus pair kerning. Space and tab move the
// pen by one and two space widths. Newline moves down one line and back to
// the start column; vertical tab moves down two lines. Control characters
// produce no geometry and do not take part in kerning of the next pair.
//
// Text is NFC-normalized first so combining sequences use precomposed
// glyphs. Glyphs beyond the preloaded range are rasterized and copied into
// the atlased sheet when they fit inside it, and skipped otherwise.
func (r *Renderer) CreateText(run TextRun) *Primitive {
	runes := []rune(norm.NFC.String(run.Text))
	p := NewPrimitive(len(runes) * 4)

	face, size := run.Face, run.Size
	if face == nil || size <= 0 {
		r.AddPrimitive(p)
		return p
	}

	offset := r.LoadFont(face, size)
	r.fonts.Extend(face, size, runes)
	var sheet image.Rectangle
	if h, ok := r.fonts.Handle(face, size); ok && !h.IsEmpty() {
		sheet = image.Rectangle{Max: h.Size}
	}

	spaceWidth := face.Glyph(' ', size, false).Advance
	lineHeight := r.lineHeight(face, size)

	start := V2(snap(run.Position.X), snap(run.Position.Y+float32(size)))
	pen := start
	var prev rune

	char := NewPrimitive(4)
	for _, c := range runes {
		pen.X += face.Kerning(prev, c, size)

		switch c {
		case ' ':
			pen.X += spaceWidth
			continue
		case '\t':
			pen.X += spaceWidth * tabSpaces
			continue
		case '\n':
			pen.Y += lineHeight
			pen.X = start.X
			continue
		case '\v':
			pen.Y += lineHeight * tabSpaces
			continue
		}

		g := face.Glyph(c, size, false)
		switch {
		case g.TextureRect.Empty():
		case !g.TextureRect.In(sheet):
			r.logger.Debug("ggui: glyph not in atlased sheet", "rune", c, "size", size)
		default:
			char.Clear()
			b, t := g.Bounds, g.TextureRect
			addQuad(char,
				glyphVertex(pen, b.Min.X, b.Min.Y, offset, t.Min.X, t.Min.Y, run.Color),
				glyphVertex(pen, b.Min.X, b.Max.Y, offset, t.Min.X, t.Max.Y, run.Color),
				glyphVertex(pen, b.Max.X, b.Min.Y, offset, t.Max.X, t.Min.Y, run.Color),
				glyphVertex(pen, b.Max.X, b.Max.Y, offset, t.Max.X, t.Max.Y, run.Color),
			)
			p.Add(char)
		}

		pen.X += g.Advance
		prev = c
	}

	r.AddPrimitive(p)
	return p
}

func glyphVertex(pen Vec2, x, y int, offset Vec2, u, v int, c RGBA) Vertex {
	return Vertex{
		Position: pen.Add(V2(float32(x), float32(y))),
		Color:    c,
		TexCoord: offset.Add(V2(float32(u), float32(v))),
	}
}
