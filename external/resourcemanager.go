package external

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// Image, ImageView, Buffer, Sampler, ShaderModule, DescriptorSetLayout,
// and Pipeline are the kind markers for the typed handles ResourceManager
// hands out — see TypedHandle below. They carry no fields; they exist
// purely so a handle minted for one resource kind can't be passed where a
// handle for another is expected.
type (
	Image                struct{}
	ImageView            struct{}
	Buffer               struct{}
	Sampler              struct{}
	ShaderModule         struct{}
	DescriptorSetLayout  struct{}
	Pipeline             struct{}
)

// ImageHandle addresses an image owned (or externally registered) by a
// ResourceManager.
type ImageHandle = TypedHandle[Image]

// ImageViewHandle addresses an image view.
type ImageViewHandle = TypedHandle[ImageView]

// BufferHandle addresses a buffer.
type BufferHandle = TypedHandle[Buffer]

// SamplerHandle addresses a sampler.
type SamplerHandle = TypedHandle[Sampler]

// ShaderModuleHandle addresses a compiled shader module.
type ShaderModuleHandle = TypedHandle[ShaderModule]

// DescriptorSetLayoutHandle addresses a descriptor set layout.
type DescriptorSetLayoutHandle = TypedHandle[DescriptorSetLayout]

// PipelineHandle addresses a graphics or compute pipeline.
type PipelineHandle = TypedHandle[Pipeline]

// TypedHandle is a minimal opaque handle, independent of this module's
// internal slotmap package, so external ResourceManager implementations
// need not import it. It is a plain exported {index, version} pair;
// slotmap.TypedHandle exposes neither its index nor its version, so there
// is no direct conversion between the two.
type TypedHandle[Kind any] struct {
	Index   uint32
	Version uint32
}

// Valid reports whether h looks like it was ever minted — it does not
// guarantee the resource it names is still alive.
func (h TypedHandle[Kind]) Valid() bool { return h.Version != 0 }

// ImageDesc describes an image to create through ResourceManager.CreateImage.
type ImageDesc struct {
	DebugName string
	Format    vk.Format
	Extent    vk.Extent3D
	MipLevels uint32
	Samples   vk.SampleCountFlagBits
	Usage     vk.ImageUsageFlags
}

// ImageViewDesc describes a view to create over an existing image.
type ImageViewDesc struct {
	DebugName    string
	Image        ImageHandle
	Format       vk.Format
	AspectMask   vk.ImageAspectFlags
	BaseMipLevel uint32
	MipLevels    uint32
}

// ResourceManager mints, looks up, and releases handles to every
// handle-addressable GPU object the framegraph touches. It is supplied by
// the caller; this module only ever creates transient textures and cached
// pipelines through it, never a VkDevice or VkInstance itself.
//
// Wrapping a pre-existing external image/view — e.g. a swapchain image —
// is supported via RegisterExternalImage/RegisterExternalImageView,
// which mint a handle without taking ownership: ReleaseImage/
// ReleaseImageView on a non-owning handle is a no-op for the underlying
// Vulkan object, it only frees the handle slot.
type ResourceManager interface {
	CreateImage(desc ImageDesc) (ImageHandle, error)
	RegisterExternalImage(debugName string, image vk.Image, format vk.Format, extent vk.Extent3D) ImageHandle
	Image(h ImageHandle) (vk.Image, error)
	ReleaseImage(h ImageHandle) error

	CreateImageView(desc ImageViewDesc) (ImageViewHandle, error)
	RegisterExternalImageView(debugName string, view vk.ImageView) ImageViewHandle
	ImageView(h ImageViewHandle) (vk.ImageView, error)
	ReleaseImageView(h ImageViewHandle) error

	CreateSampler(debugName string, info vk.SamplerCreateInfo) (SamplerHandle, error)
	Sampler(h SamplerHandle) (vk.Sampler, error)
	ReleaseSampler(h SamplerHandle) error

	CreateBuffer(debugName string, size vk.DeviceSize, usage vk.BufferUsageFlags) (BufferHandle, error)
	Buffer(h BufferHandle) (vk.Buffer, error)
	ReleaseBuffer(h BufferHandle) error

	CreateShaderModule(debugName string, spirv []uint32) (ShaderModuleHandle, error)
	ShaderModule(h ShaderModuleHandle) (vk.ShaderModule, error)
	ReleaseShaderModule(h ShaderModuleHandle) error

	CreateDescriptorSetLayout(debugName string, bindings []vk.DescriptorSetLayoutBinding) (DescriptorSetLayoutHandle, error)
	DescriptorSetLayout(h DescriptorSetLayoutHandle) (vk.DescriptorSetLayout, error)
	ReleaseDescriptorSetLayout(h DescriptorSetLayoutHandle) error

	CreatePipeline(debugName string, info vk.GraphicsPipelineCreateInfo) (PipelineHandle, error)
	Pipeline(h PipelineHandle) (vk.Pipeline, error)
	ReleasePipeline(h PipelineHandle) error
}
