// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/color"
	"testing"
)

// quad returns a TL, BL, TR, BR quad with indices 0,1,2, 2,1,3.
func quad(x0, y0, x1, y1 float32, r, g, b, a float32) ([]Vertex, []uint32) {
	mk := func(x, y, u, v float32) Vertex {
		return Vertex{X: x, Y: y, U: u, V: v, R: r, G: g, B: b, A: a}
	}
	verts := []Vertex{
		mk(x0, y0, 0, 0),
		mk(x0, y1, 0, y1-y0),
		mk(x1, y0, x1-x0, 0),
		mk(x1, y1, x1-x0, y1-y0),
	}
	return verts, []uint32{0, 1, 2, 2, 1, 3}
}

func TestFill_OpaqueQuad(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	verts, idx := quad(0, 0, 4, 4, 1, 0, 0, 1)

	Fill(dst, dst.Bounds(), nil, verts, idx)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := dst.RGBAAt(x, y)
			want := color.RGBA{}
			if x < 4 && y < 4 {
				want = color.RGBA{R: 255, A: 255}
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFill_SharedEdgeBlendsOnce(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	verts, idx := quad(0, 0, 8, 8, 0.5, 0.5, 0.5, 0.5)

	Fill(dst, dst.Bounds(), nil, verts, idx)

	ref := dst.RGBAAt(0, 7)
	if ref.A == 0 {
		t.Fatal("quad did not cover (0,7)")
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != ref {
				t.Fatalf("pixel (%d,%d) = %v, want uniform %v", x, y, got, ref)
			}
		}
	}
}

func TestFill_WindingIndependent(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 6, 6))
	b := image.NewRGBA(image.Rect(0, 0, 6, 6))
	verts := []Vertex{
		{X: 0, Y: 0, A: 1, G: 1},
		{X: 6, Y: 0, A: 1, G: 1},
		{X: 0, Y: 6, A: 1, G: 1},
	}

	Fill(a, a.Bounds(), nil, verts, []uint32{0, 1, 2})
	Fill(b, b.Bounds(), nil, verts, []uint32{0, 2, 1})

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("winding changed coverage at byte %d", i)
		}
	}
	if a.RGBAAt(0, 0).A != 255 || a.RGBAAt(5, 5).A != 0 {
		t.Errorf("unexpected coverage: (0,0)=%v (5,5)=%v", a.RGBAAt(0, 0), a.RGBAAt(5, 5))
	}
}

func TestFill_Clip(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	verts, idx := quad(0, 0, 8, 8, 1, 1, 1, 1)

	Fill(dst, image.Rect(2, 2, 4, 4), nil, verts, idx)

	if dst.RGBAAt(1, 1).A != 0 || dst.RGBAAt(4, 4).A != 0 {
		t.Error("pixels outside clip were written")
	}
	if dst.RGBAAt(2, 2).A != 255 || dst.RGBAAt(3, 3).A != 255 {
		t.Error("pixels inside clip were not written")
	}
}

func TestFill_TextureModulation(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tex.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	tex.SetRGBA(1, 0, color.RGBA{})

	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	verts := []Vertex{
		{X: 0, Y: 0, U: 0, V: 0, B: 1, A: 1},
		{X: 0, Y: 1, U: 0, V: 1, B: 1, A: 1},
		{X: 2, Y: 0, U: 2, V: 0, B: 1, A: 1},
		{X: 2, Y: 1, U: 2, V: 1, B: 1, A: 1},
	}

	Fill(dst, dst.Bounds(), tex, verts, []uint32{0, 1, 2, 2, 1, 3})

	if got, want := dst.RGBAAt(0, 0), (color.RGBA{B: 255, A: 255}); got != want {
		t.Errorf("white texel * blue = %v, want %v", got, want)
	}
	if got := dst.RGBAAt(1, 0); got.A != 0 {
		t.Errorf("transparent texel produced %v", got)
	}
}

func TestFill_SourceOver(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	verts, idx := quad(0, 0, 1, 1, 0, 0, 0, 0)

	Fill(dst, dst.Bounds(), nil, verts, idx)

	if got, want := dst.RGBAAt(0, 0), (color.RGBA{R: 255, A: 255}); got != want {
		t.Errorf("transparent source changed destination: %v, want %v", got, want)
	}
}

func TestFill_SkipsBadIndices(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	verts, _ := quad(0, 0, 4, 4, 1, 1, 1, 1)

	Fill(dst, dst.Bounds(), nil, verts, []uint32{0, 1, 9, 0, 1})

	for _, b := range dst.Pix {
		if b != 0 {
			t.Fatal("out of range triangle was drawn")
		}
	}
}

func TestSourceOver(t *testing.T) {
	tests := []struct {
		name           string
		sr, sg, sb, sa byte
		dr, dg, db, da byte
		want           [4]byte
	}{
		{"opaque source wins", 10, 20, 30, 255, 200, 200, 200, 255, [4]byte{10, 20, 30, 255}},
		{"clear source keeps dest", 0, 0, 0, 0, 1, 2, 3, 4, [4]byte{1, 2, 3, 4}},
		{"onto transparent", 50, 60, 70, 128, 0, 0, 0, 0, [4]byte{50, 60, 70, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := sourceOver(tt.sr, tt.sg, tt.sb, tt.sa, tt.dr, tt.dg, tt.db, tt.da)
			if got := [4]byte{r, g, b, a}; got != tt.want {
				t.Errorf("sourceOver() = %v, want %v", got, tt.want)
			}
		})
	}
}
