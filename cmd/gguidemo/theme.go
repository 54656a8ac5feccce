// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme holds the colors and metrics of the demo scene.
//
//	background = "#2b2b2b"
//	accent = "#4d9be6"
//
//	[pane]
//	fill = "#464646"
//	border = "#5a5a5a"
//	border_width = 2.0
//	border_shift = 32
//
//	[text]
//	color = "#e0e0e0"
//	size = 14
type Theme struct {
	Background string    `toml:"background"`
	Accent     string    `toml:"accent"`
	Pane       PaneTheme `toml:"pane"`
	Text       TextTheme `toml:"text"`
}

// PaneTheme styles panes.
type PaneTheme struct {
	Fill        string  `toml:"fill"`
	Border      string  `toml:"border"`
	BorderWidth float32 `toml:"border_width"`
	BorderShift int     `toml:"border_shift"`
}

// TextTheme styles text.
type TextTheme struct {
	Color string `toml:"color"`
	Size  int    `toml:"size"`
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: "#2b2b2b",
		Accent:     "#4d9be6",
		Pane: PaneTheme{
			Fill:        "#464646",
			Border:      "#5a5a5a",
			BorderWidth: 2,
			BorderShift: 32,
		},
		Text: TextTheme{
			Color: "#e0e0e0",
			Size:  14,
		},
	}
}

// LoadTheme reads a theme file. Keys missing from the file keep their
// default values.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Theme{}, fmt.Errorf("load theme %s: unknown key %q", path, undecoded[0].String())
	}
	if err := t.validate(); err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	return t, nil
}

func (t Theme) validate() error {
	if t.Pane.BorderWidth < 0 {
		return fmt.Errorf("pane.border_width must not be negative, got %v", t.Pane.BorderWidth)
	}
	if t.Text.Size <= 0 {
		return fmt.Errorf("text.size must be positive, got %d", t.Text.Size)
	}
	return nil
}
