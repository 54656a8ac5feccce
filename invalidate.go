// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "strings"

// Dataset is a set of device-side resources that must be rebuilt before
// the next frame.
type Dataset uint8

const (
	// DatasetVertex covers vertex positions, colors and texture coordinates.
	DatasetVertex Dataset = 1 << iota
	// DatasetIndex covers triangle indices and draw ranges.
	DatasetIndex
	// DatasetTexture covers the atlas pages.
	DatasetTexture

	// DatasetAll covers every dataset.
	DatasetAll = DatasetVertex | DatasetIndex | DatasetTexture
)

// Has reports whether every dataset in o is in d.
func (d Dataset) Has(o Dataset) bool {
	return d&o == o
}

// String returns a human-readable list of datasets.
func (d Dataset) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	if d&DatasetVertex != 0 {
		parts = append(parts, "vertex")
	}
	if d&DatasetIndex != 0 {
		parts = append(parts, "index")
	}
	if d&DatasetTexture != 0 {
		parts = append(parts, "texture")
	}
	return strings.Join(parts, "|")
}
