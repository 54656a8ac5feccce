// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas packs bitmap regions into a set of texture pages.
//
// The atlas treats all pages as one virtual strip of unbounded height. A
// region is placed with first-fit: the ordered list of allocated regions is
// scanned for the first vertical gap large enough for the image plus padding
// on both sides. The virtual y offset is folded into a page index and an
// in-page offset by division and modulo with the maximum texture size.
//
// Every image is surrounded by Padding pixels so bilinear filtering does not
// bleed neighbouring regions into each other. Pages are created lazily and
// grown on demand up to the maximum texture size.
//
// Example:
//
//	a, err := atlas.New(atlas.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	h := a.Load(img)
//	if h.IsEmpty() {
//	    // image was larger than the maximum texture size
//	}
//
// The atlas is not safe for concurrent use. It is owned by the thread that
// owns the graphics context.
package atlas
