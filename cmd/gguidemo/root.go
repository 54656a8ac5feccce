// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/ggui"
)

type flags struct {
	output  string
	width   int
	height  int
	theme   string
	shaped  bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "gguidemo",
		Short:        "Render a sample ggui scene to PNG",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if f.verbose {
				level = charmlog.DebugLevel
			}
			ggui.SetLogger(slog.New(newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "gguidemo.png", "output PNG file")
	fl.IntVar(&f.width, "width", 640, "image width")
	fl.IntVar(&f.height, "height", 400, "image height")
	fl.StringVarP(&f.theme, "theme", "t", "", "theme TOML file")
	fl.BoolVar(&f.shaped, "shaped-kerning", false, "kern text by shaping glyph pairs")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "ggui",
	})
}

func run(cmd *cobra.Command, f flags) error {
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", f.width, f.height)
	}

	theme := DefaultTheme()
	if f.theme != "" {
		t, err := LoadTheme(f.theme)
		if err != nil {
			return err
		}
		theme = t
	}

	img, err := renderScene(cmd.Context(), sceneConfig{
		width:  f.width,
		height: f.height,
		theme:  theme,
		shaped: f.shaped,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(f.output)
	if err != nil {
		return err
	}
	if err := encodePNG(out, img); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	ggui.Logger().Info("scene saved", "path", f.output, "width", f.width, "height", f.height)
	return nil
}
