package pipeline

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// ErrNilDevice is returned when a pipeline or resource constructor is
// called without a device.
var ErrNilDevice = errors.New("pipeline: nil device")

// DefaultColorFormat is the color target format pipelines render to when
// the options leave it unset.
const DefaultColorFormat = gputypes.TextureFormatBGRA8Unorm

// Options selects the fixed-function state of a render pipeline. The zero
// value renders to BGRA8Unorm without depth testing or culling, with
// premultiplied alpha blending and no MSAA.
type Options struct {
	// ColorFormat of the render target. Defaults to DefaultColorFormat.
	ColorFormat gputypes.TextureFormat

	// DepthStencil enables depth testing and writing against a
	// Depth32Float attachment.
	DepthStencil bool

	// BackfaceCulling culls back faces (counter-clockwise front faces).
	BackfaceCulling bool

	// SampleCount for MSAA targets. Defaults to 1.
	SampleCount uint32
}

func (o Options) colorFormat() gputypes.TextureFormat {
	if o.ColorFormat == gputypes.TextureFormatUndefined {
		return DefaultColorFormat
	}
	return o.ColorFormat
}

func (o Options) sampleCount() uint32 {
	if o.SampleCount == 0 {
		return 1
	}
	return o.SampleCount
}

// buildRenderPipeline assembles shader module, pipeline layout and render
// pipeline for one shading program. The returned resources are owned by
// the caller and released in reverse order on later failure.
func buildRenderPipeline(
	device hal.Device,
	label string,
	shaderSource string,
	bindGroupLayouts []hal.BindGroupLayout,
	buffers []gputypes.VertexBufferLayout,
	opts Options,
) (hal.ShaderModule, hal.PipelineLayout, hal.RenderPipeline, error) {
	if shaderSource == "" {
		return nil, nil, nil, fmt.Errorf("%s shader source is empty", label)
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: shaderSource},
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("compile %s shader: %w", label, err)
	}

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		device.DestroyShaderModule(shader)
		return nil, nil, nil, fmt.Errorf("create %s pipeline layout: %w", label, err)
	}

	cullMode := gputypes.CullModeNone
	if opts.BackfaceCulling {
		cullMode = gputypes.CullModeBack
	}

	var depthStencil *hal.DepthStencilState
	if opts.DepthStencil {
		depthStencil = &hal.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		}
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    opts.colorFormat(),
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthStencil,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: cullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: opts.sampleCount(),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		device.DestroyPipelineLayout(pipeLayout)
		device.DestroyShaderModule(shader)
		return nil, nil, nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}

	roots.Logger().Debug("created render pipeline",
		"label", label,
		"depth", opts.DepthStencil,
		"culling", opts.BackfaceCulling)

	return shader, pipeLayout, pipeline, nil
}
