// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui/glyph"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	// CPU rendering with a small atlas
//	r, err := ggui.New(ggui.WithMaxTextureSize(1024))
//
//	// GPU buffers on a host device
//	r, err := ggui.New(ggui.WithDeviceProvider(provider))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	maxTextureSize      int
	maxTextureSizeSet   bool
	provider            gpucontext.DeviceProvider
	backend             BackendKind
	shifter             ColorShifter
	onWindowInvalidated func()
	lineHeight          func(face glyph.Face, size int) float32
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		maxTextureSize: int(gputypes.DefaultLimits().MaxTextureDimension2D),
		backend:        BackendAuto,
		shifter:        ShiftBorderColors,
	}
}

// applyDeviceLimits replaces the default texture size with the device's
// 2D texture limit unless WithMaxTextureSize was given.
func (o *options) applyDeviceLimits() {
	if o.maxTextureSizeSet {
		return
	}
	if lim, ok := deviceLimits(o.provider); ok && lim.MaxTextureDimension2D >= 2 {
		o.maxTextureSize = int(lim.MaxTextureDimension2D)
	}
}

func (o *options) validate() error {
	if o.maxTextureSize < 2 {
		return &OptionError{Option: "MaxTextureSize", Reason: "must be at least 2"}
	}
	if o.backend < BackendAuto || o.backend > BackendBuffer {
		return &OptionError{Option: "Backend", Reason: "unknown backend kind"}
	}
	if o.shifter == nil {
		return &OptionError{Option: "ColorShifter", Reason: "must not be nil"}
	}
	return nil
}

// WithMaxTextureSize sets the atlas page size limit in pixels. It defaults
// to the 2D texture limit of the injected device when it reports one, and to
// gputypes.DefaultLimits otherwise.
func WithMaxTextureSize(size int) Option {
	return func(o *options) {
		o.maxTextureSize = size
		o.maxTextureSizeSet = true
	}
}

// WithDeviceProvider injects the host GPU device. A provider exposing HAL
// device and queue accessors enables the buffer backend.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithBackend forces a backend instead of probing the device provider.
func WithBackend(kind BackendKind) Option {
	return func(o *options) {
		o.backend = kind
	}
}

// WithColorShifter replaces ShiftBorderColors for pane bevels.
func WithColorShifter(s ColorShifter) Option {
	return func(o *options) {
		o.shifter = s
	}
}

// WithWindowInvalidated registers fn to be called when Display observes a
// new, non-empty target size. Layout code uses it to re-run.
func WithWindowInvalidated(fn func()) Option {
	return func(o *options) {
		o.onWindowInvalidated = fn
	}
}

// WithLineHeight overrides the distance between text lines. By default it
// is the face's own line height.
func WithLineHeight(fn func(face glyph.Face, size int) float32) Option {
	return func(o *options) {
		o.lineHeight = fn
	}
}
