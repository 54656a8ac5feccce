// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"testing"

	"github.com/gogpu/ggui/glyph"
)

// gridFace is a monospaced fake face. Every visible glyph is 6x8 pixels
// above the baseline with an advance of 7, spaces advance by 4, and the
// pair (A, V) kerns by -2. 'Z' is reported outside the sheet.
type gridFace struct{}

func (gridFace) ID() uint64 { return 0xfeed }

func (gridFace) Glyph(r rune, _ int, _ bool) glyph.Glyph {
	switch r {
	case ' ':
		return glyph.Glyph{Advance: 4}
	case 'Z':
		return glyph.Glyph{
			Bounds:      image.Rect(0, -8, 6, 0),
			TextureRect: image.Rect(100, 0, 106, 8),
			Advance:     7,
		}
	}
	return glyph.Glyph{
		Bounds:      image.Rect(0, -8, 6, 0),
		TextureRect: image.Rect(0, 0, 6, 8),
		Advance:     7,
	}
}

func (gridFace) Kerning(first, second rune, _ int) float32 {
	if first == 'A' && second == 'V' {
		return -2
	}
	return 0
}

func (gridFace) LineHeight(int) float32 { return 20 }

func (gridFace) Sheet(int) *image.RGBA {
	return solidImage(16, 8, White)
}

// glyphOrigins returns the top-left corner of every glyph quad in p.
func glyphOrigins(p *Primitive) []Vec2 {
	var out []Vec2
	for i := 0; i < len(p.Vertices()); i += 4 {
		out = append(out, p.Vertices()[i].Position)
	}
	return out
}

func TestCreateText_Layout(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Vec2
	}{
		{"kerned pair", "AV", []Vec2{V2(0, 7), V2(5, 7)}},
		{"space", "A A", []Vec2{V2(0, 7), V2(11, 7)}},
		{"tab", "\tA", []Vec2{V2(8, 7)}},
		{"newline", "AA\nA", []Vec2{V2(0, 7), V2(7, 7), V2(0, 27)}},
		{"vertical tab", "A\vA", []Vec2{V2(0, 7), V2(7, 47)}},
		{"control keeps pair", "A\nV", []Vec2{V2(0, 7), V2(-2, 27)}},
		{"glyph outside sheet", "ZA", []Vec2{V2(7, 7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t)
			p := r.CreateText(TextRun{
				Text:     tt.text,
				Face:     gridFace{},
				Size:     10,
				Position: V2(0.4, 5),
				Color:    Red,
			})
			if got := glyphOrigins(p); !equalVecs(got, tt.want) {
				t.Errorf("glyph origins = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateText_Geometry(t *testing.T) {
	r := newTestRenderer(t)
	p := r.CreateText(TextRun{Text: "A", Face: gridFace{}, Size: 10, Color: Blue})

	off := r.LoadFont(gridFace{}, 10)
	wantPos := []Vec2{V2(0, 2), V2(0, 10), V2(6, 2), V2(6, 10)}
	wantTex := []Vec2{off, off.Add(V2(0, 8)), off.Add(V2(6, 0)), off.Add(V2(6, 8))}

	if got := positions(p); !equalVecs(got, wantPos) {
		t.Errorf("positions = %v, want %v", got, wantPos)
	}
	if got := texCoords(p); !equalVecs(got, wantTex) {
		t.Errorf("tex coords = %v, want %v", got, wantTex)
	}
	if !equalIndices(p.Indices(), quadIndices) {
		t.Errorf("indices = %v, want %v", p.Indices(), quadIndices)
	}
	for _, v := range p.Vertices() {
		if v.Color != Blue {
			t.Errorf("vertex color = %v, want %v", v.Color, Blue)
		}
	}
	if len(r.Primitives()) != 1 {
		t.Errorf("registered %d primitives, want 1", len(r.Primitives()))
	}
}

func TestCreateText_Normalizes(t *testing.T) {
	r := newTestRenderer(t)
	p := r.CreateText(TextRun{Text: "e\u0301", Face: gridFace{}, Size: 10, Color: Red})
	if n := len(glyphOrigins(p)); n != 1 {
		t.Errorf("combining sequence produced %d glyphs, want 1", n)
	}
}

func TestCreateText_LineHeightOption(t *testing.T) {
	r := newTestRenderer(t, WithLineHeight(func(glyph.Face, int) float32 { return 30 }))
	p := r.CreateText(TextRun{Text: "A\nA", Face: gridFace{}, Size: 10, Color: Red})

	want := []Vec2{V2(0, 2), V2(0, 32)}
	if got := glyphOrigins(p); !equalVecs(got, want) {
		t.Errorf("glyph origins = %v, want %v", got, want)
	}
}

func TestCreateText_NoFace(t *testing.T) {
	r := newTestRenderer(t)
	p := r.CreateText(TextRun{Text: "hello", Size: 10})
	if len(p.Vertices()) != 0 {
		t.Errorf("text without a face has %d vertices", len(p.Vertices()))
	}
	if len(r.Primitives()) != 1 {
		t.Error("text without a face should still be registered")
	}
}

func TestCreateText_GoRegular(t *testing.T) {
	face, err := glyph.NewGoRegularFace()
	if err != nil {
		t.Fatalf("NewGoRegularFace() error = %v", err)
	}
	t.Cleanup(func() { _ = face.Close() })

	r := newTestRenderer(t, WithMaxTextureSize(2048))
	p := r.CreateText(TextRun{Text: "Hello", Face: face, Size: 14, Position: V2(2, 2), Color: Black})
	if n := len(glyphOrigins(p)); n != 5 {
		t.Fatalf("rendered %d glyphs, want 5", n)
	}

	target := NewPixmapTarget(80, 24)
	if err := r.Display(target); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	var inked int
	img := target.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("no pixels drawn for text")
	}
}

func TestCreateText_GlyphBeyondPreload(t *testing.T) {
	face, err := glyph.NewGoRegularFace()
	if err != nil {
		t.Fatalf("NewGoRegularFace() error = %v", err)
	}
	t.Cleanup(func() { _ = face.Close() })

	r := newTestRenderer(t, WithMaxTextureSize(2048))
	r.CreateText(TextRun{Text: "A", Face: face, Size: 12, Color: Black})
	h, ok := r.fonts.Handle(face, 12)
	if !ok || h.IsEmpty() {
		t.Fatal("sheet not cached")
	}

	const euro = '€'
	if euro < glyph.PreloadEnd {
		t.Fatalf("%q is inside the preload range", euro)
	}
	p := r.CreateText(TextRun{Text: string(euro), Face: face, Size: 12, Color: Black})

	g := face.Glyph(euro, 12, false)
	if !g.TextureRect.In(image.Rectangle{Max: h.Size}) {
		t.Fatalf("glyph rect %v outside cached sheet %v", g.TextureRect, h.Size)
	}
	if n := len(glyphOrigins(p)); n != 1 {
		t.Fatalf("rendered %d glyphs, want 1", n)
	}

	sheet, ok := r.Atlas().Read(h.Offset)
	if !ok {
		t.Fatal("sheet region missing from atlas")
	}
	var covered bool
	for y := g.TextureRect.Min.Y; y < g.TextureRect.Max.Y; y++ {
		for x := g.TextureRect.Min.X; x < g.TextureRect.Max.X; x++ {
			if sheet.RGBAAt(x, y).A > 0 {
				covered = true
			}
		}
	}
	if !covered {
		t.Error("late glyph pixels were not copied into the atlas")
	}
}
