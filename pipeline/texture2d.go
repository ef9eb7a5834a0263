package pipeline

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// Texture2DPipeline draws instanced textured quads: the shared unit quad
// scaled, positioned and tinted per instance, sampled against one bound
// texture per draw.
type Texture2DPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	mu        sync.Mutex
	instances *InstanceBuffer
}

// NewTexture2DPipeline builds the textured quad pipeline against the
// shared camera and texture layouts and uploads the unit quad geometry.
func NewTexture2DPipeline(device hal.Device, queue hal.Queue, shared *SharedResources, opts Options) (*Texture2DPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	roots.Logger().Debug("creating texture2d pipeline")

	shader, pipeLayout, pipeline, err := buildRenderPipeline(
		device,
		"texture2d",
		texture2DShaderSource,
		[]hal.BindGroupLayout{shared.CameraLayout(), shared.TextureLayout()},
		[]gputypes.VertexBufferLayout{roots.QuadVertexLayout(), roots.QuadInstanceLayout()},
		opts,
	)
	if err != nil {
		return nil, err
	}

	p := &Texture2DPipeline{
		device:     device,
		shader:     shader,
		pipeLayout: pipeLayout,
		pipeline:   pipeline,
		instances:  NewInstanceBuffer("texture2d_instances", roots.QuadInstanceSize),
	}

	vertexBuf, err := createAndUploadBuffer(device, queue, "texture2d_verts",
		roots.EncodeQuadVertices(roots.QuadVertices[:]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.vertexBuf = vertexBuf

	indexBuf, err := createAndUploadBuffer(device, queue, "texture2d_indices",
		roots.EncodeIndices16(roots.QuadIndices[:]),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.indexBuf = indexBuf

	return p, nil
}

// Prep uploads the sprite instances for the next Render.
func (p *Texture2DPipeline) Prep(queue hal.Queue, instances []roots.QuadInstance) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instances.Update(p.device, queue, roots.EncodeQuadInstances(instances))
}

// Render records the instanced draw into rp with the given camera and
// texture bind groups. A no-op when no instances are prepped.
func (p *Texture2DPipeline) Render(rp hal.RenderPassEncoder, camera *Camera, texture hal.BindGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instances.Count() == 0 {
		return
	}

	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(roots.CameraGroup, camera.BindGroup(), nil)
	rp.SetBindGroup(roots.QuadTextureGroup, texture, nil)
	rp.SetVertexBuffer(0, p.vertexBuf, 0)
	rp.SetVertexBuffer(1, p.instances.Buffer(), 0)
	rp.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(roots.QuadIndices)), p.instances.Count(), 0, 0, 0)
}

// Destroy releases all pipeline resources. Safe to call more than once.
func (p *Texture2DPipeline) Destroy() {
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

// createAndUploadBuffer creates a buffer sized to data and writes it.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// destroyPipelineParts releases a shader/layout/pipeline triple in reverse
// creation order, nilling each handle.
func destroyPipelineParts(device hal.Device, shader *hal.ShaderModule, layout *hal.PipelineLayout, pipeline *hal.RenderPipeline) {
	if *pipeline != nil {
		device.DestroyRenderPipeline(*pipeline)
		*pipeline = nil
	}
	if *layout != nil {
		device.DestroyPipelineLayout(*layout)
		*layout = nil
	}
	if *shader != nil {
		device.DestroyShaderModule(*shader)
		*shader = nil
	}
}
