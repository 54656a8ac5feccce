// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/glyph"
)

type sceneConfig struct {
	width, height int
	theme         Theme
	shaped        bool
}

// renderScene builds a small window with a title bar, a button, a label, a
// rotated sprite and a hatched canvas area, then displays it on the CPU.
func renderScene(ctx context.Context, cfg sceneConfig) (*image.RGBA, error) {
	r, err := ggui.New(ggui.WithBackend(ggui.BackendArray))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var faceOpts []glyph.FaceOption
	if cfg.shaped {
		faceOpts = append(faceOpts, glyph.WithShapedKerning())
	}
	face, err := glyph.NewGoRegularFace(faceOpts...)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	defer face.Close()

	th := cfg.theme
	w, h := float32(cfg.width), float32(cfg.height)
	fill := ggui.Hex(th.Pane.Fill)
	border := ggui.Hex(th.Pane.Border)
	textColor := ggui.Hex(th.Text.Color)
	accent := ggui.Hex(th.Accent)

	bg := r.CreateRect(ggui.Vec2{}, ggui.Vec2{X: w, Y: h}, ggui.Hex(th.Background))
	bg.SetLayer(-1)

	// Window frame and title bar.
	win := ggui.Vec2{X: 20, Y: 20}
	winSize := ggui.Vec2{X: w - 40, Y: h - 40}
	r.CreatePane(win, winSize, th.Pane.BorderWidth, fill, border, th.Pane.BorderShift)
	r.CreateRect(win, ggui.Vec2{X: win.X + winSize.X, Y: win.Y + 24}, accent)

	size := th.Text.Size
	r.CreateText(ggui.TextRun{
		Text:     "ggui demo",
		Face:     face,
		Size:     size,
		Position: ggui.Vec2{X: win.X + 8, Y: win.Y + 4},
		Color:    textColor,
	})

	// Button with a label.
	btn := ggui.Vec2{X: win.X + 16, Y: win.Y + 40}
	r.CreatePane(btn, ggui.Vec2{X: 120, Y: 32}, th.Pane.BorderWidth, fill.Shift(16), border, th.Pane.BorderShift)
	r.CreateText(ggui.TextRun{
		Text:     "Click me",
		Face:     face,
		Size:     size,
		Position: ggui.Vec2{X: btn.X + 16, Y: btn.Y + 8},
		Color:    textColor,
	})

	// Multi-line label with kerning pairs.
	r.CreateText(ggui.TextRun{
		Text:     "AVATAR Typography\n\tindented line",
		Face:     face,
		Size:     size,
		Position: ggui.Vec2{X: btn.X, Y: btn.Y + 48},
		Color:    textColor,
	})

	// Separator and a triangle marker.
	sepY := btn.Y + 100
	r.CreateLine(ggui.Vec2{X: win.X + 8, Y: sepY}, ggui.Vec2{X: win.X + winSize.X - 8, Y: sepY}, border, 1)
	r.CreateTriangle(
		ggui.Vec2{X: btn.X + 140, Y: btn.Y + 8},
		ggui.Vec2{X: btn.X + 140, Y: btn.Y + 24},
		ggui.Vec2{X: btn.X + 152, Y: btn.Y + 16},
		accent,
	)

	// Sprite, rotated a quarter turn.
	tex := r.LoadTexture(checker(32, 8, accent.NRGBA(), color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	r.CreateSprite(ggui.Rect{Left: btn.X, Top: sepY + 12, Width: 48, Height: 48}, tex, ggui.Rect{}, 1)

	// Canvas area clipped by its own viewport.
	area := image.Rect(int(btn.X)+64, int(sepY)+12, int(btn.X)+184, int(sepY)+60)
	vp := r.CreateViewport()
	vp.SetDestinationOrigin(ggui.Vec2{X: float32(area.Min.X), Y: float32(area.Min.Y)})
	vp.SetSize(ggui.Vec2{X: float32(area.Dx()), Y: float32(area.Dy())})
	canvas := r.CreateCanvas(func(t ggui.Target) error {
		pt, ok := t.(ggui.PixelTarget)
		if !ok {
			return nil
		}
		hatch(pt.Pixels(), area, border.NRGBA())
		return nil
	})
	canvas.SetViewport(vp)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := ggui.NewPixmapTarget(cfg.width, cfg.height)
	if err := r.Display(target); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	ggui.Logger().Debug("scene displayed",
		"primitives", len(r.Primitives()),
		"vertices", r.VertexCount(),
		"indices", r.IndexCount())
	return target.Image(), nil
}

// checker returns an n×n image of alternating cell-sized squares.
func checker(n, cell int, a, b color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y += cell {
		for x := 0; x < n; x += cell {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			draw.Draw(img, image.Rect(x, y, x+cell, y+cell), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// hatch draws diagonal lines every four pixels inside area.
func hatch(dst *image.RGBA, area image.Rectangle, c color.NRGBA) {
	area = area.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if (x+y)%4 == 0 {
				dst.Set(x, y, c)
			}
		}
	}
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
