// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package ggui

import (
	"encoding/binary"
	"errors"
	"image"
	"log/slog"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// halProvider is a device provider exposing HAL accessors.
type halProvider struct {
	mockProvider
	device hal.Device
	queue  hal.Queue
}

func (p *halProvider) HalDevice() any { return p.device }
func (p *halProvider) HalQueue() any  { return p.queue }

// fakeBufferDrawer records indexed draws.
type fakeBufferDrawer struct {
	w, h    int
	uploads int
	bufs    []GPUBuffers
	ranges  []DrawRange
}

func (d *fakeBufferDrawer) Size() (int, int)        { return d.w, d.h }
func (d *fakeBufferDrawer) StateCache() *StateCache { return nil }

func (d *fakeBufferDrawer) UploadPage(int, *image.RGBA) error {
	d.uploads++
	return nil
}

func (d *fakeBufferDrawer) DrawIndexed(bufs *GPUBuffers, r DrawRange) error {
	d.bufs = append(d.bufs, *bufs)
	d.ranges = append(d.ranges, r)
	return nil
}

func newBufferRenderer(t *testing.T) *Renderer {
	t.Helper()
	device, queue := createNoopDevice(t)
	r, err := New(
		WithDeviceProvider(&halProvider{device: device, queue: queue}),
		WithBackend(BackendBuffer),
		WithMaxTextureSize(256),
	)
	if errors.Is(err, errShaderCompile) {
		t.Skipf("batch shader not supported by naga: %v", err)
	}
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestBufferBackend_Draw(t *testing.T) {
	r := newBufferRenderer(t)
	if r.Backend() != BackendBuffer {
		t.Fatalf("Backend() = %v, want buffer", r.Backend())
	}

	var order []string
	r.CreateRect(V2(0, 0), V2(4, 4), Red)
	r.CreateCanvas(func(Target) error {
		order = append(order, "canvas")
		return nil
	})
	r.CreateTriangle(V2(0, 0), V2(0, 4), V2(4, 0), Blue)

	d := &fakeBufferDrawer{w: 16, h: 16}
	if err := r.Display(d); err != nil {
		t.Fatalf("Display() error = %v", err)
	}

	if len(d.ranges) != 2 {
		t.Fatalf("got %d draws, want 2", len(d.ranges))
	}
	if d.ranges[0].FirstIndex != 0 || d.ranges[0].IndexCount != 6 {
		t.Errorf("first range = %+v, want indices [0,6)", d.ranges[0])
	}
	if d.ranges[1].FirstIndex != 6 || d.ranges[1].IndexCount != 3 {
		t.Errorf("second range = %+v, want indices [6,9)", d.ranges[1])
	}
	if len(order) != 1 {
		t.Errorf("canvas ran %d times, want 1", len(order))
	}

	bufs := d.bufs[0]
	if bufs.Vertices == nil || bufs.Indices == nil || bufs.Uniforms == nil || bufs.Shader == nil {
		t.Errorf("missing device resources: %+v", bufs)
	}
	if bufs.VertexCount != 7 || bufs.IndexCount != 9 {
		t.Errorf("buffer counts = %d/%d, want 7/9", bufs.VertexCount, bufs.IndexCount)
	}
	if bufs.IndexFormat != gputypes.IndexFormatUint32 {
		t.Errorf("IndexFormat = %v, want uint32", bufs.IndexFormat)
	}
	if bufs.Layout.ArrayStride != vertexStride {
		t.Errorf("ArrayStride = %d, want %d", bufs.Layout.ArrayStride, vertexStride)
	}
	if d.uploads != 1 {
		t.Errorf("page uploads = %d, want 1", d.uploads)
	}
	if r.Invalid() != 0 {
		t.Errorf("Invalid() = %v after Display", r.Invalid())
	}
}

func TestBufferBackend_UnsupportedTarget(t *testing.T) {
	r := newBufferRenderer(t)
	r.CreateRect(V2(0, 0), V2(4, 4), Red)

	err := r.Display(newFakeDrawer(8, 8))
	if !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("Display(TriangleDrawer) error = %v, want ErrUnsupportedTarget", err)
	}
}

func TestBufferBackend_BufferGrowth(t *testing.T) {
	r := newBufferRenderer(t)
	d := &fakeBufferDrawer{w: 64, h: 64}

	r.CreateRect(V2(0, 0), V2(4, 4), Red)
	_ = r.Display(d)
	b := r.backend.(*bufferBackend)
	if b.vertexCap != 256 {
		t.Errorf("vertex capacity = %d, want 256", b.vertexCap)
	}

	for i := 0; i < 40; i++ {
		x := float32(i)
		r.CreateRect(V2(x, 0), V2(x+1, 1), Green)
	}
	_ = r.Display(d)
	if b.vertexCap != 8192 {
		t.Errorf("vertex capacity = %d, want 8192", b.vertexCap)
	}
	big := d.bufs[len(d.bufs)-1]
	if big.VertexCount != 41*4 {
		t.Errorf("VertexCount = %d, want %d", big.VertexCount, 41*4)
	}
}

func TestSelectBackend_AutoWithHAL(t *testing.T) {
	device, queue := createNoopDevice(t)
	b, err := selectBackend(BackendAuto, &halProvider{device: device, queue: queue}, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("selectBackend() error = %v", err)
	}
	defer b.close()

	// Falls back to the array backend if the shader does not compile.
	if b.kind() != BackendBuffer && b.kind() != BackendArray {
		t.Errorf("kind() = %v", b.kind())
	}
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		in, want uint64
	}{
		{0, 256},
		{1, 256},
		{256, 256},
		{257, 512},
		{5000, 8192},
	}
	for _, tt := range tests {
		if got := bufferSize(tt.in); got != tt.want {
			t.Errorf("bufferSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPackMatrix(t *testing.T) {
	m := Ortho(0, 100, 50, 0, -1, 64)
	b := packMatrix(m)
	if len(b) != uniformSize {
		t.Fatalf("len = %d, want %d", len(b), uniformSize)
	}
	for i, want := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != want {
			t.Errorf("element %d = %v, want %v", i, got, want)
		}
	}
}
