package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// DepthFormat is the format of depth attachments created by
// NewDepthTexture and expected by pipelines built with
// Options.DepthStencil.
const DepthFormat = gputypes.TextureFormatDepth32Float

// Texture bundles a GPU texture with the view and sampler the shading
// programs bind as a pair.
type Texture struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
	width   uint32
	height  uint32
}

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// NewTexture uploads img as an RGBA8 texture with a linear clamping
// sampler. Any image type is accepted; non-RGBA images are converted.
func NewTexture(device hal.Device, queue hal.Queue, img image.Image, label string) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	rgba := toRGBA(img)
	bounds := rgba.Bounds()
	w := uint32(bounds.Dx())
	h := uint32(bounds.Dy())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("create texture %q: empty image", label)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", label, err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		rgba.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %q: %w", label, err)
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create sampler %q: %w", label, err)
	}

	return &Texture{
		device:  device,
		texture: tex,
		view:    view,
		sampler: sampler,
		width:   w,
		height:  h,
	}, nil
}

// NewColorTexture creates a 1x1 texture of a flat color, the stand-in for
// untextured draws.
func NewColorTexture(device hal.Device, queue hal.Queue, c color.RGBA, label string) (*Texture, error) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return NewTexture(device, queue, img, label)
}

// NewDepthTexture creates a Depth32Float render attachment sized to the
// target surface.
func NewDepthTexture(device hal.Device, width, height uint32, label string) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create depth texture %q: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create depth view %q: %w", label, err)
	}

	return &Texture{
		device:  device,
		texture: tex,
		view:    view,
		width:   width,
		height:  height,
	}, nil
}

// View returns the texture view, e.g. for a depth-stencil attachment.
func (t *Texture) View() hal.TextureView { return t.view }

// Write replaces the full texture contents. data must be w*h*4 bytes of
// RGBA pixels.
func (t *Texture) Write(queue hal.Queue, data []byte) error {
	if uint32(len(data)) != t.width*t.height*4 {
		return fmt.Errorf("texture write: got %d bytes, want %d", len(data), t.width*t.height*4)
	}
	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width * 4, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	return nil
}

// Destroy releases the texture, view and sampler.
func (t *Texture) Destroy() {
	if t.sampler != nil {
		t.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// toRGBA converts an arbitrary image to tightly packed RGBA8 with the
// origin at (0,0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok &&
		rgba.Bounds().Min == (image.Point{}) && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(rgba, image.Point{}, img, bounds, draw.Src, nil)
	return rgba
}
