// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ebitenhost draws ggui output onto an Ebitengine image.
//
// Target implements ggui.TriangleDrawer: the renderer keeps building
// batches on the CPU and the host turns each batch into one or more
// DrawTriangles calls against the uploaded atlas pages.
//
//	func (g *game) Draw(screen *ebiten.Image) {
//		g.target.SetImage(screen)
//		_ = g.renderer.Display(g.target)
//	}
package ebitenhost
