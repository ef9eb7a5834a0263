package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// SharedResources owns the bind group layouts common to more than one
// pipeline: the camera uniform layout every program binds at group 0, and
// the texture+sampler layout bound by the quad and model pipelines.
type SharedResources struct {
	device        hal.Device
	cameraLayout  hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
}

// NewSharedResources creates the shared bind group layouts.
func NewSharedResources(device hal.Device) (*SharedResources, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	cameraLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shared_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    roots.CameraBinding,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create camera layout: %w", err)
	}

	textureLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shared_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    roots.TextureBinding,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    roots.SamplerBinding,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		device.DestroyBindGroupLayout(cameraLayout)
		return nil, fmt.Errorf("create texture layout: %w", err)
	}

	return &SharedResources{
		device:        device,
		cameraLayout:  cameraLayout,
		textureLayout: textureLayout,
	}, nil
}

// CameraLayout returns the group-0 camera uniform layout.
func (s *SharedResources) CameraLayout() hal.BindGroupLayout { return s.cameraLayout }

// TextureLayout returns the texture+sampler layout.
func (s *SharedResources) TextureLayout() hal.BindGroupLayout { return s.textureLayout }

// CreateTextureBindGroup binds a texture's view and sampler against the
// shared texture layout.
func (s *SharedResources) CreateTextureBindGroup(tex *Texture, label string) (hal.BindGroup, error) {
	if tex == nil {
		return nil, fmt.Errorf("create texture bind group %q: nil texture", label)
	}
	bg, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: s.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: roots.TextureBinding, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
			{Binding: roots.SamplerBinding, Resource: gputypes.SamplerBinding{
				Sampler: tex.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group %q: %w", label, err)
	}
	return bg, nil
}

// Destroy releases the shared layouts. Safe to call more than once.
func (s *SharedResources) Destroy() {
	if s.textureLayout != nil {
		s.device.DestroyBindGroupLayout(s.textureLayout)
		s.textureLayout = nil
	}
	if s.cameraLayout != nil {
		s.device.DestroyBindGroupLayout(s.cameraLayout)
		s.cameraLayout = nil
	}
}

// Camera owns the GPU copy of the shared camera uniform block and the
// group-0 bind group every pipeline sets.
type Camera struct {
	device    hal.Device
	buffer    hal.Buffer
	bindGroup hal.BindGroup
}

// NewCamera uploads the initial uniform block and binds it against the
// shared camera layout.
func (s *SharedResources) NewCamera(queue hal.Queue, data roots.CameraUniform) (*Camera, error) {
	buffer, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "camera_uniform",
		Size:  roots.CameraUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create camera buffer: %w", err)
	}
	queue.WriteBuffer(buffer, 0, data.Bytes())

	bindGroup, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "camera_bind",
		Layout: s.cameraLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: roots.CameraBinding, Resource: gputypes.BufferBinding{
				Buffer: buffer.NativeHandle(), Offset: 0, Size: roots.CameraUniformSize,
			}},
		},
	})
	if err != nil {
		s.device.DestroyBuffer(buffer)
		return nil, fmt.Errorf("create camera bind group: %w", err)
	}

	return &Camera{device: s.device, buffer: buffer, bindGroup: bindGroup}, nil
}

// Update writes a new uniform block. The host must not overlap this with
// in-flight draws reading the camera.
func (c *Camera) Update(queue hal.Queue, data roots.CameraUniform) {
	queue.WriteBuffer(c.buffer, 0, data.Bytes())
}

// BindGroup returns the group-0 bind group.
func (c *Camera) BindGroup() hal.BindGroup { return c.bindGroup }

// Destroy releases the camera buffer and bind group.
func (c *Camera) Destroy() {
	if c.bindGroup != nil {
		c.device.DestroyBindGroup(c.bindGroup)
		c.bindGroup = nil
	}
	if c.buffer != nil {
		c.device.DestroyBuffer(c.buffer)
		c.buffer = nil
	}
}
