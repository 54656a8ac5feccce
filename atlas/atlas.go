// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"image"
	"image/color"
	"log/slog"
	"sort"

	"golang.org/x/image/draw"
)

// Config holds atlas configuration.
type Config struct {
	// MaxTextureSize is the device-reported maximum texture dimension.
	// It bounds both the accepted image size and the page height.
	// Default: 8192
	MaxTextureSize int

	// Padding inserted above and below every region.
	// Default: 1
	Padding int

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// OnInvalidate is called after every change to page pixels so that the
	// owner can mark its texture dataset for re-upload.
	OnInvalidate func()
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MaxTextureSize: 8192,
		Padding:        1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxTextureSize < 2 {
		return &ConfigError{Field: "MaxTextureSize", Reason: "must be at least 2"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if 2*c.Padding >= c.MaxTextureSize {
		return &ConfigError{Field: "Padding", Reason: "must be less than half MaxTextureSize"}
	}
	return nil
}

// Handle refers to a region inside the atlas. It owns no pixels.
//
// The zero Handle is the empty placeholder returned for images that cannot
// be atlased. Geometry built from it samples nothing useful but is safe.
type Handle struct {
	// Offset is the virtual offset of the region. X is always 0; Y spans
	// all pages (page index * MaxTextureSize + in-page offset).
	Offset image.Point

	// Size is the region size in pixels.
	Size image.Point

	valid bool
}

// IsEmpty reports whether h is the empty placeholder.
func (h Handle) IsEmpty() bool {
	return !h.valid
}

// node records an allocated region. Nodes are kept sorted by Offset.Y.
type node struct {
	offset image.Point
	size   image.Point
}

// Region is a read-only view of an allocated node.
type Region struct {
	Offset image.Point
	Size   image.Point
}

// Atlas is a first-fit texture atlas spread over one or more pages.
type Atlas struct {
	cfg    Config
	logger *slog.Logger

	nodes []node
	pages []*image.RGBA
}

// New creates an atlas with the given configuration.
func New(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Atlas{cfg: cfg, logger: logger}, nil
}

// MaxTextureSize returns the page size limit.
func (a *Atlas) MaxTextureSize() int {
	return a.cfg.MaxTextureSize
}

// Padding returns the padding inserted around every region.
func (a *Atlas) Padding() int {
	return a.cfg.Padding
}

// LoadImage converts img to RGBA and loads it. See Load.
func (a *Atlas) LoadImage(img image.Image) Handle {
	if rgba, ok := img.(*image.RGBA); ok {
		return a.Load(rgba)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return a.Load(rgba)
}

// Load places img into the atlas and returns its handle.
//
// Images wider than MaxTextureSize, images whose padded height exceeds
// it, and images with no pixels are rejected with an empty handle.
func (a *Atlas) Load(img *image.RGBA) Handle {
	limit := a.cfg.MaxTextureSize
	pad := a.cfg.Padding
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	if w > limit || h+2*pad > limit {
		a.logger.Warn("atlas: image exceeds maximum texture size",
			"width", w, "height", h, "padding", pad, "max", limit)
		return Handle{}
	}
	if w <= 0 || h <= 0 {
		a.logger.Debug("atlas: ignoring empty image")
		return Handle{}
	}

	// First fit along the virtual strip.
	last := 0
	for _, n := range a.nodes {
		if n.offset.Y-last >= h+2*pad {
			break
		}
		last = n.offset.Y + n.size.Y
	}

	page, local := a.Locate(last)

	if page >= len(a.pages) || local+h+2*pad > limit {
		a.pages = append(a.pages, image.NewRGBA(image.Rectangle{}))
		page = len(a.pages) - 1
		local = 0
	}

	a.blit(page, local+pad, img)

	offset := image.Point{Y: page*limit + local + pad}
	a.insert(node{offset: offset, size: image.Pt(w, h)})
	a.invalidate()

	a.logger.Debug("atlas: loaded image",
		"page", page, "offset", offset.Y, "width", w, "height", h)

	return Handle{Offset: offset, Size: image.Pt(w, h), valid: true}
}

// blit copies img into page at row y, regrowing the page raster first if
// img does not fit inside its current bounds.
func (a *Atlas) blit(page, y int, img *image.RGBA) {
	dst := a.pages[page]
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	if w > dst.Bounds().Dx() || y+h > dst.Bounds().Dy() {
		newW := max(dst.Bounds().Dx(), w)
		newH := max(dst.Bounds().Dy(), y+h)
		grown := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.Draw(grown, grown.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(grown, dst.Bounds(), dst, image.Point{}, draw.Src)
		a.pages[page] = grown
		dst = grown

		a.logger.Debug("atlas: page regrown", "page", page, "width", newW, "height", newH)
	}

	draw.Draw(dst, image.Rect(0, y, w, y+h), img, img.Bounds().Min, draw.Src)
}

// insert adds n keeping nodes sorted by offset.
func (a *Atlas) insert(n node) {
	i := sort.Search(len(a.nodes), func(i int) bool {
		return a.nodes[i].offset.Y > n.offset.Y
	})
	a.nodes = append(a.nodes, node{})
	copy(a.nodes[i+1:], a.nodes[i:])
	a.nodes[i] = n
}

func (a *Atlas) find(offset image.Point) int {
	for i := range a.nodes {
		if a.nodes[i].offset == offset {
			return i
		}
	}
	return -1
}

// Unload releases the region at offset so its space can be reused.
// Page pixels are left untouched. Unknown offsets are ignored.
func (a *Atlas) Unload(offset image.Point) bool {
	i := a.find(offset)
	if i < 0 {
		a.logger.Debug("atlas: unload of unknown region", "x", offset.X, "y", offset.Y)
		return false
	}
	a.nodes = append(a.nodes[:i], a.nodes[i+1:]...)
	return true
}

// Update overwrites the pixels of the region at offset with img.
// It is a no-op when the region is unknown or img has a different size.
func (a *Atlas) Update(offset image.Point, img *image.RGBA) bool {
	i := a.find(offset)
	if i < 0 {
		a.logger.Debug("atlas: update of unknown region", "x", offset.X, "y", offset.Y)
		return false
	}
	n := a.nodes[i]
	size := image.Pt(img.Bounds().Dx(), img.Bounds().Dy())
	if size != n.size {
		a.logger.Warn("atlas: update with mismatching image size",
			"want", n.size, "got", size)
		return false
	}

	page, local := a.Locate(offset.Y)
	dst := a.pages[page]
	draw.Draw(dst, image.Rect(offset.X, local, offset.X+size.X, local+size.Y), img, img.Bounds().Min, draw.Src)
	a.invalidate()
	return true
}

// Read returns a copy of the pixels of the region at offset.
func (a *Atlas) Read(offset image.Point) (*image.RGBA, bool) {
	i := a.find(offset)
	if i < 0 {
		return nil, false
	}
	n := a.nodes[i]
	page, local := a.Locate(offset.Y)
	out := image.NewRGBA(image.Rect(0, 0, n.size.X, n.size.Y))
	draw.Draw(out, out.Bounds(), a.pages[page], image.Pt(offset.X, local), draw.Src)
	return out, true
}

// Locate folds a virtual y coordinate into a page index and in-page offset.
func (a *Atlas) Locate(y int) (page, local int) {
	return y / a.cfg.MaxTextureSize, y % a.cfg.MaxTextureSize
}

// PageCount returns the number of allocated pages.
func (a *Atlas) PageCount() int {
	return len(a.pages)
}

// Page returns the raster of page i. The image is owned by the atlas and
// must be treated as read-only; it may be replaced when the page regrows.
func (a *Atlas) Page(i int) *image.RGBA {
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

// Regions returns the allocated regions ordered by offset.
func (a *Atlas) Regions() []Region {
	out := make([]Region, len(a.nodes))
	for i, n := range a.nodes {
		out[i] = Region{Offset: n.offset, Size: n.size}
	}
	return out
}

func (a *Atlas) invalidate() {
	if a.cfg.OnInvalidate != nil {
		a.cfg.OnInvalidate()
	}
}
