// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// layerFactor separates layers in the sort key so that no level value
// can move a primitive across a layer boundary.
const layerFactor = 1 << 20

// registry owns the live primitives in draw order and keeps running
// totals of their vertices and indices.
type registry struct {
	prims       []*Primitive
	vertexCount int
	indexCount  int
}

// add registers p. It reports false if p is already registered.
func (r *registry) add(p *Primitive) bool {
	if r.indexOf(p) >= 0 {
		return false
	}
	r.prims = append(r.prims, p)
	r.vertexCount += len(p.vertices)
	r.indexCount += len(p.indices)
	return true
}

// indexOf searches from the end, where recently added primitives are.
func (r *registry) indexOf(p *Primitive) int {
	for i := len(r.prims) - 1; i >= 0; i-- {
		if r.prims[i] == p {
			return i
		}
	}
	return -1
}

// remove unregisters p. It reports false if p is not registered.
func (r *registry) remove(p *Primitive) bool {
	i := r.indexOf(p)
	if i < 0 {
		return false
	}
	r.removeAt(i)
	return true
}

func (r *registry) removeAt(i int) {
	p := r.prims[i]
	r.uncount(p)
	copy(r.prims[i:], r.prims[i+1:])
	r.prims[len(r.prims)-1] = nil
	r.prims = r.prims[:len(r.prims)-1]
}

// uncount subtracts p's totals. Going below zero means a registered
// primitive was changed behind the registry's back.
func (r *registry) uncount(p *Primitive) {
	if r.vertexCount < len(p.vertices) {
		panic("ggui: vertex count underflow")
	}
	if r.indexCount < len(p.indices) {
		panic("ggui: index count underflow")
	}
	r.vertexCount -= len(p.vertices)
	r.indexCount -= len(p.indices)
}

// sort orders primitives by layer and level with a stable insertion sort.
// Order changes little between frames, so this is close to linear in
// practice. It reports whether any primitive moved.
func (r *registry) sort() bool {
	moved := false
	for i := 1; i < len(r.prims); i++ {
		j := i
		for j > 0 && r.prims[j-1].sortKey() > r.prims[j].sortKey() {
			r.prims[j-1], r.prims[j] = r.prims[j], r.prims[j-1]
			j--
			moved = true
		}
	}
	return moved
}
