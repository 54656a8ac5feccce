// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "errors"

// Sentinel errors returned by Renderer.
var (
	// ErrNilTarget is returned when Display is called with a nil target.
	ErrNilTarget = errors.New("ggui: nil render target")

	// ErrUnsupportedTarget is returned when the target cannot consume the
	// output of the selected backend.
	ErrUnsupportedTarget = errors.New("ggui: target not supported by backend")

	// ErrNoDevice is returned when the buffer backend is requested without
	// a device provider exposing a HAL device and queue.
	ErrNoDevice = errors.New("ggui: no HAL device available")

	// ErrClosed is returned when a closed renderer is used.
	ErrClosed = errors.New("ggui: renderer closed")
)

// OptionError reports an invalid option passed to New.
type OptionError struct {
	Option string
	Reason string
}

func (e *OptionError) Error() string {
	return "ggui: invalid option " + e.Option + ": " + e.Reason
}
