package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// InstanceBuffer is a grow-on-demand vertex buffer stepped per instance.
// Update reuses the allocation while the data fits and recreates it
// geometrically otherwise; an empty update keeps the allocation but
// resets the instance count so the draw is skipped.
type InstanceBuffer struct {
	label    string
	stride   uint32
	buffer   hal.Buffer
	capacity uint64
	count    uint32
}

// NewInstanceBuffer returns an empty buffer for records of the given
// stride. No GPU allocation happens until the first non-empty Update.
func NewInstanceBuffer(label string, stride uint32) *InstanceBuffer {
	return &InstanceBuffer{label: label, stride: stride}
}

// Update uploads the packed instance data. len(data) must be a multiple
// of the record stride.
func (b *InstanceBuffer) Update(device hal.Device, queue hal.Queue, data []byte) error {
	if len(data)%int(b.stride) != 0 {
		return fmt.Errorf("instance buffer %q: %d bytes is not a multiple of stride %d",
			b.label, len(data), b.stride)
	}

	b.count = uint32(len(data)) / b.stride
	if len(data) == 0 {
		return nil
	}

	if b.buffer == nil || uint64(len(data)) > b.capacity {
		if b.buffer != nil {
			device.DestroyBuffer(b.buffer)
			b.buffer = nil
		}
		capacity := b.capacity
		if capacity == 0 {
			capacity = uint64(len(data))
		}
		for capacity < uint64(len(data)) {
			capacity *= 2
		}
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: b.label,
			Size:  capacity,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			b.count = 0
			return fmt.Errorf("create instance buffer %q: %w", b.label, err)
		}
		b.buffer = buf
		b.capacity = capacity
		roots.Logger().Debug("grew instance buffer", "label", b.label, "capacity", capacity)
	}

	queue.WriteBuffer(b.buffer, 0, data)
	return nil
}

// Buffer returns the underlying vertex buffer, nil before the first
// non-empty Update.
func (b *InstanceBuffer) Buffer() hal.Buffer { return b.buffer }

// Count returns the number of instances uploaded by the last Update.
func (b *InstanceBuffer) Count() uint32 { return b.count }

// Destroy releases the GPU allocation.
func (b *InstanceBuffer) Destroy(device hal.Device) {
	if b.buffer != nil {
		device.DestroyBuffer(b.buffer)
		b.buffer = nil
		b.capacity = 0
		b.count = 0
	}
}
