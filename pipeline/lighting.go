package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// LightingManager owns the GPU lighting state of the lit mesh program:
// the 16-byte global uniform at group(1) binding(0) and the runtime-sized
// light list at group(1) binding(1).
//
// The light list buffer is always sized to exactly count*64 bytes so the
// shader-side arrayLength equals the number of uploaded records. An empty
// list keeps one zeroed record bound (zero-sized bindings are invalid).
// The zeroed record adds nothing for fragments away from the world origin;
// a fragment exactly at the origin normalizes a zero light_dir and goes
// NaN, the same as any light coincident with the shaded point.
type LightingManager struct {
	device hal.Device

	layout     hal.BindGroupLayout
	bindGroup  hal.BindGroup
	globalsBuf hal.Buffer
	lightsBuf  hal.Buffer
	lightCount uint32
}

// NewLightingManager creates the lighting layout and buffers with the
// default global light and an empty light list.
func NewLightingManager(device hal.Device, queue hal.Queue) (*LightingManager, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "lighting_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    roots.GlobalLightBinding,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    roots.LightListBinding,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create lighting layout: %w", err)
	}

	m := &LightingManager{device: device, layout: layout}

	globalsBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "lighting_globals",
		Size:  roots.GlobalLightDataSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		m.Destroy()
		return nil, fmt.Errorf("create lighting globals buffer: %w", err)
	}
	m.globalsBuf = globalsBuf
	queue.WriteBuffer(globalsBuf, 0, roots.DefaultGlobalLightData().Bytes())

	if err := m.rebindLights(queue, nil); err != nil {
		m.Destroy()
		return nil, err
	}

	return m, nil
}

// Layout returns the group-1 lighting bind group layout.
func (m *LightingManager) Layout() hal.BindGroupLayout { return m.layout }

// BindGroup returns the current lighting bind group. It is replaced when
// the light list changes size; fetch it each frame, not once.
func (m *LightingManager) BindGroup() hal.BindGroup { return m.bindGroup }

// LightCount returns the number of lights in the bound list.
func (m *LightingManager) LightCount() uint32 { return m.lightCount }

// UpdateGlobals writes the scene-wide ambient term.
func (m *LightingManager) UpdateGlobals(queue hal.Queue, g roots.GlobalLightData) {
	queue.WriteBuffer(m.globalsBuf, 0, g.Bytes())
}

// UpdateLights replaces the light list. The storage buffer is rewritten
// in place when the count is unchanged and recreated otherwise, keeping
// the buffer size equal to the record count the shader derives.
func (m *LightingManager) UpdateLights(queue hal.Queue, lights []roots.Light) error {
	if m.lightsBuf != nil && uint32(len(lights)) == m.lightCount && len(lights) > 0 {
		queue.WriteBuffer(m.lightsBuf, 0, roots.EncodeLights(lights))
		return nil
	}
	return m.rebindLights(queue, lights)
}

func (m *LightingManager) rebindLights(queue hal.Queue, lights []roots.Light) error {
	data := roots.EncodeLights(lights)
	if len(data) == 0 {
		data = make([]byte, roots.LightSize)
	}

	lightsBuf, err := m.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "lighting_lights",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create light list buffer: %w", err)
	}
	queue.WriteBuffer(lightsBuf, 0, data)

	bindGroup, err := m.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "lighting_bind",
		Layout: m.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: roots.GlobalLightBinding, Resource: gputypes.BufferBinding{
				Buffer: m.globalsBuf.NativeHandle(), Offset: 0, Size: roots.GlobalLightDataSize,
			}},
			{Binding: roots.LightListBinding, Resource: gputypes.BufferBinding{
				Buffer: lightsBuf.NativeHandle(), Offset: 0, Size: uint64(len(data)),
			}},
		},
	})
	if err != nil {
		m.device.DestroyBuffer(lightsBuf)
		return fmt.Errorf("create lighting bind group: %w", err)
	}

	if m.bindGroup != nil {
		m.device.DestroyBindGroup(m.bindGroup)
	}
	if m.lightsBuf != nil {
		m.device.DestroyBuffer(m.lightsBuf)
	}
	m.lightsBuf = lightsBuf
	m.bindGroup = bindGroup
	m.lightCount = uint32(len(lights))

	roots.Logger().Debug("rebound light list", "count", m.lightCount)
	return nil
}

// Destroy releases all lighting resources.
func (m *LightingManager) Destroy() {
	if m.bindGroup != nil {
		m.device.DestroyBindGroup(m.bindGroup)
		m.bindGroup = nil
	}
	if m.lightsBuf != nil {
		m.device.DestroyBuffer(m.lightsBuf)
		m.lightsBuf = nil
	}
	if m.globalsBuf != nil {
		m.device.DestroyBuffer(m.globalsBuf)
		m.globalsBuf = nil
	}
	if m.layout != nil {
		m.device.DestroyBindGroupLayout(m.layout)
		m.layout = nil
	}
}
