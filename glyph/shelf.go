// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

// shelfPacker implements shelf-based rectangle packing for glyph sheets.
//
// Rectangles are placed left-to-right on horizontal shelves. A shelf's
// height is fixed by the first rectangle placed on it; when no shelf has
// room a new one is opened below the last. The packer's height can be
// raised with grow, which is how sheets expand instead of failing.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
}

// shelf represents a horizontal strip in the sheet.
type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free column
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w x h rectangle.
// Returns -1, -1, false if the packer is full.
func (p *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + p.padding
	paddedH := h + p.padding

	if paddedW > p.width {
		return -1, -1, false
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+paddedW > p.width {
			continue
		}
		if h > s.height {
			// Only the last shelf may get taller, and only if there is
			// room below it.
			if i != len(p.shelves)-1 || s.y+paddedH > p.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += paddedW
		return x, y, true
	}

	newY := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		newY = last.y + last.height + p.padding
	}
	if newY+paddedH > p.height {
		return -1, -1, false
	}

	p.shelves = append(p.shelves, shelf{y: newY, height: h, x: paddedW})
	return 0, newY, true
}

// grow raises the packer's height. Existing placements are unaffected.
func (p *shelfPacker) grow(height int) {
	if height > p.height {
		p.height = height
	}
}

// usedHeight returns the lowest row touched by any shelf.
func (p *shelfPacker) usedHeight() int {
	if len(p.shelves) == 0 {
		return 0
	}
	last := p.shelves[len(p.shelves)-1]
	return last.y + last.height
}
