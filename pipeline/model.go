package pipeline

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/BrackenLo/roots"
)

// Mesh is an uploaded vertex/index pair drawn by the model pipeline.
type Mesh struct {
	device     hal.Device
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
}

// NewMesh uploads mesh geometry. Indices are 32-bit.
func NewMesh(device hal.Device, queue hal.Queue, vertices []roots.ModelVertex, indices []uint32) (*Mesh, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("create mesh: empty geometry")
	}

	vertexBuf, err := createAndUploadBuffer(device, queue, "mesh_verts",
		roots.EncodeModelVertices(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	indexBuf, err := createAndUploadBuffer(device, queue, "mesh_indices",
		roots.EncodeIndices32(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vertexBuf)
		return nil, err
	}

	return &Mesh{
		device:     device,
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: uint32(len(indices)),
	}, nil
}

// NewCubeMesh uploads the unit cube.
func NewCubeMesh(device hal.Device, queue hal.Queue) (*Mesh, error) {
	return NewMesh(device, queue, roots.CubeVertices[:], roots.CubeIndices[:])
}

// IndexCount returns the number of indices drawn per instance.
func (m *Mesh) IndexCount() uint32 { return m.indexCount }

// Destroy releases the mesh buffers.
func (m *Mesh) Destroy() {
	if m.indexBuf != nil {
		m.device.DestroyBuffer(m.indexBuf)
		m.indexBuf = nil
	}
	if m.vertexBuf != nil {
		m.device.DestroyBuffer(m.vertexBuf)
		m.vertexBuf = nil
	}
}

// ModelPipeline draws instanced lit meshes with Blinn-Phong lighting:
// camera at group 0, lighting at group 1, texture at group 2.
type ModelPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	mu        sync.Mutex
	instances *InstanceBuffer
}

// NewModelPipeline builds the lit mesh pipeline against the shared camera
// and texture layouts and the lighting manager's layout.
func NewModelPipeline(device hal.Device, shared *SharedResources, lighting *LightingManager, opts Options) (*ModelPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	roots.Logger().Debug("creating model pipeline")

	shader, pipeLayout, pipeline, err := buildRenderPipeline(
		device,
		"model",
		modelShaderSource,
		[]hal.BindGroupLayout{shared.CameraLayout(), lighting.Layout(), shared.TextureLayout()},
		[]gputypes.VertexBufferLayout{roots.ModelVertexLayout(), roots.ModelInstanceLayout()},
		opts,
	)
	if err != nil {
		return nil, err
	}

	return &ModelPipeline{
		device:     device,
		shader:     shader,
		pipeLayout: pipeLayout,
		pipeline:   pipeline,
		instances:  NewInstanceBuffer("model_instances", roots.ModelInstanceSize),
	}, nil
}

// Prep uploads the mesh instances for the next Render.
func (p *ModelPipeline) Prep(queue hal.Queue, instances []roots.ModelInstance) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instances.Update(p.device, queue, roots.EncodeModelInstances(instances))
}

// Render records an instanced draw of mesh into rp with the given camera,
// lighting and texture bindings. A no-op when no instances are prepped.
func (p *ModelPipeline) Render(rp hal.RenderPassEncoder, camera *Camera, lighting *LightingManager, mesh *Mesh, texture hal.BindGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instances.Count() == 0 {
		return
	}

	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(roots.CameraGroup, camera.BindGroup(), nil)
	rp.SetBindGroup(roots.LightingGroup, lighting.BindGroup(), nil)
	rp.SetBindGroup(roots.ModelTextureGroup, texture, nil)
	rp.SetVertexBuffer(0, mesh.vertexBuf, 0)
	rp.SetVertexBuffer(1, p.instances.Buffer(), 0)
	rp.SetIndexBuffer(mesh.indexBuf, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(mesh.indexCount, p.instances.Count(), 0, 0, 0)
}

// Destroy releases all pipeline resources. Safe to call more than once.
func (p *ModelPipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.instances.Destroy(p.device)
	destroyPipelineParts(p.device, &p.shader, &p.pipeLayout, &p.pipeline)
}
