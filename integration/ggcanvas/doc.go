// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggcanvas shows a ggui renderer in a gogpu window.
//
// The renderer draws into a CPU pixel target with the array backend; the
// canvas uploads the pixels as a texture and draws it through
// gpucontext.TextureDrawer:
//
//	ggui.Renderer (Display) -> PixmapTarget -> GPU Texture -> Window
//
// Usage:
//
//	r, _ := ggui.New()
//	canvas, _ := ggcanvas.New(app.GPUContextProvider(), r, 800, 600)
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = canvas.Display()
//	    _ = canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// The texture is created lazily on the first RenderTo and only re-uploaded
// after Display or Resize. Canvas is NOT safe for concurrent use.
package ggcanvas
