package pipeline

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// LinePipeline draws instanced 3D line segments. Each instance stretches
// the 8-vertex cross shape between its two endpoints; only the camera is
// bound, the fragment stage outputs the instance color directly.
type LinePipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	mu        sync.Mutex
	instances *InstanceBuffer
}

// NewLinePipeline builds the line pipeline against the shared camera
// layout and uploads the cross-shape geometry.
func NewLinePipeline(device hal.Device, queue hal.Queue, shared *SharedResources, opts Options) (*LinePipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	roots.Logger().Debug("creating line pipeline")

	shader, pipeLayout, pipeline, err := buildRenderPipeline(
		device,
		"line",
		lineShaderSource,
		[]hal.BindGroupLayout{shared.CameraLayout()},
		[]gputypes.VertexBufferLayout{roots.LineVertexLayout(), roots.LineInstanceLayout()},
		opts,
	)
	if err != nil {
		return nil, err
	}

	p := &LinePipeline{
		device:     device,
		shader:     shader,
		pipeLayout: pipeLayout,
		pipeline:   pipeline,
		instances:  NewInstanceBuffer("line_instances", roots.LineInstanceSize),
	}

	vertexBuf, err := createAndUploadBuffer(device, queue, "line_verts",
		roots.EncodeLineVertices(roots.LineVertices[:]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.vertexBuf = vertexBuf

	indexBuf, err := createAndUploadBuffer(device, queue, "line_indices",
		roots.EncodeIndices16(roots.LineIndices[:]),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.indexBuf = indexBuf

	return p, nil
}

// Prep uploads the line instances for the next Render.
func (p *LinePipeline) Prep(queue hal.Queue, instances []roots.LineInstance) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instances.Update(p.device, queue, roots.EncodeLineInstances(instances))
}

// Render records the instanced draw into rp. A no-op when no instances
// are prepped.
func (p *LinePipeline) Render(rp hal.RenderPassEncoder, camera *Camera) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instances.Count() == 0 {
		return
	}

	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(roots.CameraGroup, camera.BindGroup(), nil)
	rp.SetVertexBuffer(0, p.vertexBuf, 0)
	rp.SetVertexBuffer(1, p.instances.Buffer(), 0)
	rp.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(roots.LineIndices)), p.instances.Count(), 0, 0, 0)
}

// Destroy releases all pipeline resources. Safe to call more than once.
func (p *LinePipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.instances.Destroy(p.device)
	if p.indexBuf != nil {
		p.device.DestroyBuffer(p.indexBuf)
		p.indexBuf = nil
	}
	if p.vertexBuf != nil {
		p.device.DestroyBuffer(p.vertexBuf)
		p.vertexBuf = nil
	}
	destroyPipelineParts(p.device, &p.shader, &p.pipeLayout, &p.pipeline)
}
