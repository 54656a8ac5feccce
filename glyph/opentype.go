// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("glyph: empty font data")

var nextFaceID atomic.Uint64

// FaceOption configures an OpenTypeFace.
type FaceOption func(*faceOptions)

type faceOptions struct {
	sheetWidth    int
	sheetHeight   int
	hinting       font.Hinting
	shapedKerning bool
}

func defaultFaceOptions() faceOptions {
	return faceOptions{
		sheetWidth:  512,
		sheetHeight: 128,
		hinting:     font.HintingFull,
	}
}

// WithSheetWidth sets the glyph sheet width in pixels. Default: 512.
func WithSheetWidth(w int) FaceOption {
	return func(o *faceOptions) {
		if w > 0 {
			o.sheetWidth = w
		}
	}
}

// WithHinting sets the hinting mode used for rasterization.
// Default: font.HintingFull.
func WithHinting(h font.Hinting) FaceOption {
	return func(o *faceOptions) {
		o.hinting = h
	}
}

// WithShapedKerning computes kerning by shaping glyph pairs with HarfBuzz
// instead of reading the legacy kern table.
func WithShapedKerning() FaceOption {
	return func(o *faceOptions) {
		o.shapedKerning = true
	}
}

// OpenTypeFace is a Face backed by an OpenType or TrueType font.
//
// Glyph sheets are kept per pixel size. Glyphs are packed on shelves in
// white with coverage in the alpha channel (premultiplied), and sheets grow
// downwards as needed.
//
// OpenTypeFace is not safe for concurrent use.
type OpenTypeFace struct {
	id     uint64
	font   *opentype.Font
	buf    sfnt.Buffer
	opts   faceOptions
	sizes  map[int]*sizedFace
	kerner *shapedKerner
}

type glyphKey struct {
	r    rune
	bold bool
}

// sizedFace holds the rasterizer and glyph sheet for one pixel size.
type sizedFace struct {
	face   font.Face
	sheet  *image.RGBA
	packer *shelfPacker
	glyphs map[glyphKey]Glyph
}

// NewOpenTypeFace parses data and creates a face.
func NewOpenTypeFace(data []byte, opts ...FaceOption) (*OpenTypeFace, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	o := defaultFaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}

	face := &OpenTypeFace{
		id:    nextFaceID.Add(1),
		font:  f,
		opts:  o,
		sizes: make(map[int]*sizedFace),
	}

	if o.shapedKerning {
		k, err := newShapedKerner(data)
		if err != nil {
			return nil, fmt.Errorf("glyph: shaped kerning: %w", err)
		}
		face.kerner = k
	}

	return face, nil
}

// NewGoRegularFace creates a face from the embedded Go Regular font.
func NewGoRegularFace(opts ...FaceOption) (*OpenTypeFace, error) {
	return NewOpenTypeFace(goregular.TTF, opts...)
}

// ID returns the face identity. Every OpenTypeFace has a distinct ID.
func (f *OpenTypeFace) ID() uint64 {
	return f.id
}

func (f *OpenTypeFace) sized(size int) *sizedFace {
	if s, ok := f.sizes[size]; ok {
		return s
	}

	s := &sizedFace{
		sheet:  image.NewRGBA(image.Rect(0, 0, f.opts.sheetWidth, f.opts.sheetHeight)),
		packer: newShelfPacker(f.opts.sheetWidth, f.opts.sheetHeight, 1),
		glyphs: make(map[glyphKey]Glyph),
	}
	if size > 0 {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: f.opts.hinting,
		})
		if err == nil {
			s.face = face
		}
	}
	f.sizes[size] = s
	return s
}

// Glyph returns the metrics of r at size, rasterizing it into the sheet on
// first use. Runes the font has no glyph for get an advance but no pixels.
func (f *OpenTypeFace) Glyph(r rune, size int, bold bool) Glyph {
	s := f.sized(size)
	key := glyphKey{r: r, bold: bold}
	if g, ok := s.glyphs[key]; ok {
		return g
	}

	g := f.rasterize(s, r, bold)
	s.glyphs[key] = g
	return g
}

func (f *OpenTypeFace) rasterize(s *sizedFace, r rune, bold bool) Glyph {
	if s.face == nil {
		return Glyph{}
	}

	adv, _ := s.face.GlyphAdvance(r)
	g := Glyph{Advance: fixedToFloat(adv)}

	if idx, err := f.font.GlyphIndex(&f.buf, r); err != nil || idx == 0 {
		return g
	}

	dr, mask, maskp, _, ok := s.face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		return g
	}

	w, h := dr.Dx(), dr.Dy()
	if bold {
		w++
	}

	x, y, ok := s.packer.allocate(w, h)
	for !ok {
		if w+1 > s.packer.width {
			return g
		}
		s.growSheet()
		x, y, ok = s.packer.allocate(w, h)
	}

	dst := image.Rect(x, y, x+dr.Dx(), y+h)
	draw.DrawMask(s.sheet, dst, image.White, image.Point{}, mask, maskp, draw.Over)
	if bold {
		draw.DrawMask(s.sheet, dst.Add(image.Pt(1, 0)), image.White, image.Point{}, mask, maskp, draw.Over)
		dr.Max.X++
	}

	g.Bounds = dr
	g.TextureRect = image.Rect(x, y, x+w, y+h)
	return g
}

// growSheet doubles the sheet height, keeping existing glyphs in place.
func (s *sizedFace) growSheet() {
	b := s.sheet.Bounds()
	grown := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()*2))
	draw.Draw(grown, b, s.sheet, image.Point{}, draw.Src)
	s.sheet = grown
	s.packer.grow(grown.Bounds().Dy())
}

// Kerning returns the horizontal adjustment between first and second.
func (f *OpenTypeFace) Kerning(first, second rune, size int) float32 {
	if first == 0 || second == 0 {
		return 0
	}
	if f.kerner != nil {
		return f.kerner.kern(first, second, size)
	}
	s := f.sized(size)
	if s.face == nil {
		return 0
	}
	return fixedToFloat(s.face.Kern(first, second))
}

// LineHeight returns the recommended baseline-to-baseline distance.
func (f *OpenTypeFace) LineHeight(size int) float32 {
	s := f.sized(size)
	if s.face == nil {
		return float32(size)
	}
	return fixedToFloat(s.face.Metrics().Height)
}

// Sheet returns a copy of the glyph sheet for size, cropped to the rows in
// use.
func (f *OpenTypeFace) Sheet(size int) *image.RGBA {
	s := f.sized(size)
	used := s.packer.usedHeight()
	out := image.NewRGBA(image.Rect(0, 0, s.sheet.Bounds().Dx(), used))
	draw.Draw(out, out.Bounds(), s.sheet, image.Point{}, draw.Src)
	return out
}

// Close releases the per-size rasterizers.
func (f *OpenTypeFace) Close() error {
	var errs []error
	for size, s := range f.sizes {
		if s.face != nil {
			if err := s.face.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		delete(f.sizes, size)
	}
	return errors.Join(errs...)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Ensure OpenTypeFace implements Face.
var _ Face = (*OpenTypeFace)(nil)
