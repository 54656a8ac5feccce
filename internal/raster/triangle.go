// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"
)

// Vertex is a screen-space vertex.
type Vertex struct {
	// X, Y is the position in destination pixels.
	X, Y float32

	// U, V is the texel coordinate in texture pixels.
	U, V float32

	// R, G, B, A is the premultiplied vertex color in [0, 1].
	R, G, B, A float32
}

// Fill draws the triangles listed in indices into dst using source-over
// blending. Every sampled texel is modulated by the interpolated vertex
// color; a nil tex samples opaque white. Pixels outside clip are left
// untouched. Triangles referencing vertices out of range are skipped.
func Fill(dst *image.RGBA, clip image.Rectangle, tex *image.RGBA, verts []Vertex, indices []uint32) {
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	n := uint32(len(verts))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		fillTriangle(dst, clip, tex, &verts[a], &verts[b], &verts[c])
	}
}

// edge returns twice the signed area of (v0, v1, p).
func edge(v0x, v0y, v1x, v1y, px, py float32) float32 {
	return (v1x-v0x)*(py-v0y) - (v1y-v0y)*(px-v0x)
}

// owns reports whether pixels lying exactly on the edge v0->v1 belong to
// the triangle. Reversing the edge flips the answer, which is what makes a
// shared edge owned by exactly one of its triangles.
func owns(v0, v1 *Vertex) bool {
	dx, dy := v1.X-v0.X, v1.Y-v0.Y
	return dy > 0 || (dy == 0 && dx > 0)
}

func fillTriangle(dst *image.RGBA, clip image.Rectangle, tex *image.RGBA, a, b, c *Vertex) {
	area := edge(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	bounds := image.Rect(
		int(math.Floor(float64(min(a.X, b.X, c.X)))),
		int(math.Floor(float64(min(a.Y, b.Y, c.Y)))),
		int(math.Ceil(float64(max(a.X, b.X, c.X)))),
		int(math.Ceil(float64(max(a.Y, b.Y, c.Y)))),
	).Intersect(clip)
	if bounds.Empty() {
		return
	}

	ownBC, ownCA, ownAB := owns(b, c), owns(c, a), owns(a, b)
	inv := 1 / area

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		py := float32(y) + 0.5
		row := dst.PixOffset(0, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := float32(x) + 0.5

			w0 := edge(b.X, b.Y, c.X, c.Y, px, py)
			w1 := edge(c.X, c.Y, a.X, a.Y, px, py)
			w2 := edge(a.X, a.Y, b.X, b.Y, px, py)
			if !inside(w0, ownBC) || !inside(w1, ownCA) || !inside(w2, ownAB) {
				continue
			}

			l0, l1, l2 := w0*inv, w1*inv, w2*inv
			sr, sg, sb, sa := shade(tex, a, b, c, l0, l1, l2)
			if sa == 0 && sr == 0 && sg == 0 && sb == 0 {
				continue
			}

			i := row + x*4
			p := dst.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = sourceOver(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
}

func inside(w float32, owned bool) bool {
	if w > 0 {
		return true
	}
	return w == 0 && owned
}

// shade interpolates the vertex attributes at the barycentric weights and
// returns the premultiplied source color.
func shade(tex *image.RGBA, a, b, c *Vertex, l0, l1, l2 float32) (r, g, bl, al byte) {
	cr := a.R*l0 + b.R*l1 + c.R*l2
	cg := a.G*l0 + b.G*l1 + c.G*l2
	cb := a.B*l0 + b.B*l1 + c.B*l2
	ca := a.A*l0 + b.A*l1 + c.A*l2

	if tex != nil {
		u := a.U*l0 + b.U*l1 + c.U*l2
		v := a.V*l0 + b.V*l1 + c.V*l2
		tr, tg, tb, ta := sample(tex, u, v)
		cr *= tr
		cg *= tg
		cb *= tb
		ca *= ta
	}

	return unit(cr), unit(cg), unit(cb), unit(ca)
}

// sample returns the nearest texel at (u, v) as premultiplied [0,1] values.
func sample(tex *image.RGBA, u, v float32) (r, g, b, a float32) {
	tb := tex.Bounds()
	if tb.Empty() {
		return 0, 0, 0, 0
	}
	x := clampInt(int(math.Floor(float64(u))), tb.Min.X, tb.Max.X-1)
	y := clampInt(int(math.Floor(float64(v))), tb.Min.Y, tb.Max.Y-1)
	i := tex.PixOffset(x, y)
	p := tex.Pix[i : i+4 : i+4]
	return float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
