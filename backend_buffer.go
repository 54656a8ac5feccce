// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// errShaderCompile wraps failures to compile the batch shader.
var errShaderCompile = errors.New("ggui: batch shader compilation failed")

// vertexStride is the size of one packed vertex: position, texture
// coordinate and color, all float32.
const vertexStride = 32

// uniformSize is the size of the projection uniform.
const uniformSize = 64

// batchShaderWGSL draws textured, vertex-colored triangles with
// premultiplied colors.
const batchShaderWGSL = `
struct Uniforms {
    projection: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var page: texture_2d<f32>;
@group(0) @binding(2) var page_sampler: sampler;

struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = uniforms.projection * vec4<f32>(in.position, 0.0, 1.0);
    out.uv = in.uv;
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(page, page_sampler, in.uv) * in.color;
}
`

// VertexLayout is the layout of the vertex buffer filled by the buffer
// backend.
var VertexLayout = gputypes.VertexBufferLayout{
	ArrayStride: vertexStride,
	StepMode:    gputypes.VertexStepModeVertex,
	Attributes: []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
	},
}

// GPUBuffers are the device resources shared by every draw of a frame.
// Texture coordinates in the vertex buffer are normalized to the page.
type GPUBuffers struct {
	Vertices hal.Buffer
	Indices  hal.Buffer
	Uniforms hal.Buffer
	Shader   hal.ShaderModule
	Layout   gputypes.VertexBufferLayout

	// IndexFormat is always 32-bit.
	IndexFormat gputypes.IndexFormat

	VertexCount int
	IndexCount  int
}

// DrawRange is one indexed draw out of the shared index buffer.
type DrawRange struct {
	Page       int
	Clip       image.Rectangle
	FirstIndex uint32
	IndexCount uint32
}

// BufferDrawer is a host target that records draws from GPU buffers
// owned by the renderer.
type BufferDrawer interface {
	Target

	// UploadPage replaces the host texture for atlas page index.
	UploadPage(index int, page *image.RGBA) error

	// DrawIndexed draws r using the vertex and index buffers in bufs.
	DrawIndexed(bufs *GPUBuffers, r DrawRange) error
}

type bufferStep struct {
	draw   DrawRange
	canvas CanvasFunc
}

// bufferBackend keeps all geometry in device buffers. Buffers are repacked
// on any invalidation and only reallocated when they must grow.
type bufferBackend struct {
	device hal.Device
	queue  hal.Queue
	logger *slog.Logger

	bufs      GPUBuffers
	vertexCap uint64
	indexCap  uint64

	steps []bufferStep
	built bool
	pages int
}

func newBufferBackend(device hal.Device, queue hal.Queue, logger *slog.Logger) (*bufferBackend, error) {
	spirv, err := compileShader(batchShaderWGSL)
	if err != nil {
		return nil, err
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ggui_batch",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("ggui: create shader module: %w", err)
	}

	uniforms, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ggui_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("ggui: create uniform buffer: %w", err)
	}

	return &bufferBackend{
		device: device,
		queue:  queue,
		logger: logger,
		bufs: GPUBuffers{
			Uniforms:    uniforms,
			Shader:      shader,
			Layout:      VertexLayout,
			IndexFormat: gputypes.IndexFormatUint32,
		},
		pages: -1,
	}, nil
}

// compileShader compiles WGSL source to SPIR-V words.
func compileShader(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errShaderCompile, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

func (b *bufferBackend) kind() BackendKind { return BackendBuffer }

func (b *bufferBackend) draw(f *frame) error {
	drawer, ok := f.target.(BufferDrawer)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, f.target)
	}

	// Normalized texture coordinates depend on page sizes, so a texture
	// change needs a repack too.
	if !b.built || f.invalid != 0 {
		if err := b.rebuild(f); err != nil {
			return err
		}
	}

	if err := b.queue.WriteBuffer(b.bufs.Uniforms, 0, packMatrix(f.projection)); err != nil {
		return fmt.Errorf("ggui: write uniforms: %w", err)
	}

	if b.pages != f.atlas.PageCount() || f.invalid.Has(DatasetTexture) {
		for i := 0; i < f.atlas.PageCount(); i++ {
			if err := drawer.UploadPage(i, f.atlas.Page(i)); err != nil {
				return fmt.Errorf("ggui: upload atlas page %d: %w", i, err)
			}
		}
		b.pages = f.atlas.PageCount()
	}

	for _, s := range b.steps {
		if s.canvas != nil {
			if err := s.canvas(f.target); err != nil {
				return fmt.Errorf("ggui: canvas: %w", err)
			}
			continue
		}
		f.gc.BindTexture(uint64(s.draw.Page) + 1)
		if err := drawer.DrawIndexed(&b.bufs, s.draw); err != nil {
			return fmt.Errorf("ggui: draw range: %w", err)
		}
	}
	return nil
}

func (b *bufferBackend) rebuild(f *frame) error {
	steps := buildSteps(f)

	var (
		vertices []byte
		indices  []byte
		vcount   int
		icount   int
	)
	b.steps = b.steps[:0]

	for _, s := range steps {
		if s.canvas != nil {
			b.steps = append(b.steps, bufferStep{canvas: s.canvas})
			continue
		}
		page := f.atlas.Page(s.batch.Page)
		sx, sy := float32(1), float32(1)
		if page != nil {
			sx = 1 / float32(max(page.Bounds().Dx(), 1))
			sy = 1 / float32(max(page.Bounds().Dy(), 1))
		}

		base := uint32(vcount)
		for _, v := range s.batch.Vertices {
			vertices = appendFloats(vertices, v.X, v.Y, v.U*sx, v.V*sy, v.R, v.G, v.B, v.A)
		}
		for _, i := range s.batch.Indices {
			indices = binary.LittleEndian.AppendUint32(indices, base+i)
		}

		b.steps = append(b.steps, bufferStep{draw: DrawRange{
			Page:       s.batch.Page,
			Clip:       s.batch.Clip,
			FirstIndex: uint32(icount),
			IndexCount: uint32(len(s.batch.Indices)),
		}})
		vcount += len(s.batch.Vertices)
		icount += len(s.batch.Indices)
	}

	if err := b.upload(&b.bufs.Vertices, &b.vertexCap, vertices,
		"ggui_vertices", gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if err := b.upload(&b.bufs.Indices, &b.indexCap, indices,
		"ggui_indices", gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}

	b.bufs.VertexCount = vcount
	b.bufs.IndexCount = icount
	b.built = true
	b.logger.Debug("ggui: buffers rebuilt", "vertices", vcount, "indices", icount, "draws", len(b.steps))
	return nil
}

// upload writes data into *buf, replacing it with a larger buffer first if
// it cannot hold data.
func (b *bufferBackend) upload(buf *hal.Buffer, capacity *uint64, data []byte, label string, usage gputypes.BufferUsage) error {
	need := uint64(len(data))
	if *buf == nil || need > *capacity {
		size := bufferSize(need)
		nb, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: usage,
		})
		if err != nil {
			return fmt.Errorf("ggui: create %s: %w", label, err)
		}
		if *buf != nil {
			b.device.DestroyBuffer(*buf)
		}
		*buf = nb
		*capacity = size
	}
	if len(data) > 0 {
		if err := b.queue.WriteBuffer(*buf, 0, data); err != nil {
			return fmt.Errorf("ggui: write %s: %w", label, err)
		}
	}
	return nil
}

// bufferSize rounds n up to a power of two, at least 256 bytes.
func bufferSize(n uint64) uint64 {
	size := uint64(256)
	for size < n {
		size <<= 1
	}
	return size
}

func appendFloats(dst []byte, vs ...float32) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

func packMatrix(m [16]float32) []byte {
	return appendFloats(make([]byte, 0, uniformSize), m[:]...)
}

func (b *bufferBackend) close() {
	if b.bufs.Vertices != nil {
		b.device.DestroyBuffer(b.bufs.Vertices)
	}
	if b.bufs.Indices != nil {
		b.device.DestroyBuffer(b.bufs.Indices)
	}
	if b.bufs.Uniforms != nil {
		b.device.DestroyBuffer(b.bufs.Uniforms)
	}
	if b.bufs.Shader != nil {
		b.device.DestroyShaderModule(b.bufs.Shader)
	}
	b.bufs = GPUBuffers{}
	b.steps = nil
	b.built = false
}
