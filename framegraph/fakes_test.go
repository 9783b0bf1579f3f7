package framegraph

import (
	"fmt"

	"github.com/coryengine/cory/external"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// fakeResourceManager is a minimal in-memory external.ResourceManager: it
// mints sequential handles and never touches real Vulkan objects, which
// is all the framegraph's own tests need to exercise allocation and
// barrier bookkeeping.
type fakeResourceManager struct {
	nextImage     uint32
	nextView      uint32
	nextPipeline  uint32
	images        map[external.ImageHandle]vk.Image
	views         map[external.ImageViewHandle]vk.ImageView
	pipelines     map[external.PipelineHandle]vk.Pipeline
	createImageErr error
}

func newFakeResourceManager() *fakeResourceManager {
	return &fakeResourceManager{
		images:    make(map[external.ImageHandle]vk.Image),
		views:     make(map[external.ImageViewHandle]vk.ImageView),
		pipelines: make(map[external.PipelineHandle]vk.Pipeline),
	}
}

func (r *fakeResourceManager) CreateImage(desc external.ImageDesc) (external.ImageHandle, error) {
	if r.createImageErr != nil {
		return external.ImageHandle{}, r.createImageErr
	}
	r.nextImage++
	h := external.ImageHandle{Index: r.nextImage, Version: 1}
	r.images[h] = vk.Image(r.nextImage)
	return h, nil
}

func (r *fakeResourceManager) RegisterExternalImage(debugName string, image vk.Image, format vk.Format, extent vk.Extent3D) external.ImageHandle {
	r.nextImage++
	h := external.ImageHandle{Index: r.nextImage, Version: 1}
	r.images[h] = image
	return h
}

func (r *fakeResourceManager) Image(h external.ImageHandle) (vk.Image, error) {
	img, ok := r.images[h]
	if !ok {
		return 0, fmt.Errorf("fakeResourceManager: no such image %v", h)
	}
	return img, nil
}

func (r *fakeResourceManager) ReleaseImage(h external.ImageHandle) error {
	delete(r.images, h)
	return nil
}

func (r *fakeResourceManager) CreateImageView(desc external.ImageViewDesc) (external.ImageViewHandle, error) {
	r.nextView++
	h := external.ImageViewHandle{Index: r.nextView, Version: 1}
	r.views[h] = vk.ImageView(r.nextView)
	return h, nil
}

func (r *fakeResourceManager) RegisterExternalImageView(debugName string, view vk.ImageView) external.ImageViewHandle {
	r.nextView++
	h := external.ImageViewHandle{Index: r.nextView, Version: 1}
	r.views[h] = view
	return h
}

func (r *fakeResourceManager) ImageView(h external.ImageViewHandle) (vk.ImageView, error) {
	v, ok := r.views[h]
	if !ok {
		return 0, fmt.Errorf("fakeResourceManager: no such image view %v", h)
	}
	return v, nil
}

func (r *fakeResourceManager) ReleaseImageView(h external.ImageViewHandle) error {
	delete(r.views, h)
	return nil
}

func (r *fakeResourceManager) CreateSampler(debugName string, info vk.SamplerCreateInfo) (external.SamplerHandle, error) {
	return external.SamplerHandle{Index: 1, Version: 1}, nil
}
func (r *fakeResourceManager) Sampler(h external.SamplerHandle) (vk.Sampler, error) { return 0, nil }
func (r *fakeResourceManager) ReleaseSampler(h external.SamplerHandle) error        { return nil }

func (r *fakeResourceManager) CreateBuffer(debugName string, size vk.DeviceSize, usage vk.BufferUsageFlags) (external.BufferHandle, error) {
	return external.BufferHandle{Index: 1, Version: 1}, nil
}
func (r *fakeResourceManager) Buffer(h external.BufferHandle) (vk.Buffer, error) { return 0, nil }
func (r *fakeResourceManager) ReleaseBuffer(h external.BufferHandle) error       { return nil }

func (r *fakeResourceManager) CreateShaderModule(debugName string, spirv []uint32) (external.ShaderModuleHandle, error) {
	return external.ShaderModuleHandle{Index: 1, Version: 1}, nil
}
func (r *fakeResourceManager) ShaderModule(h external.ShaderModuleHandle) (vk.ShaderModule, error) {
	return 0, nil
}
func (r *fakeResourceManager) ReleaseShaderModule(h external.ShaderModuleHandle) error { return nil }

func (r *fakeResourceManager) CreateDescriptorSetLayout(debugName string, bindings []vk.DescriptorSetLayoutBinding) (external.DescriptorSetLayoutHandle, error) {
	return external.DescriptorSetLayoutHandle{Index: 1, Version: 1}, nil
}
func (r *fakeResourceManager) DescriptorSetLayout(h external.DescriptorSetLayoutHandle) (vk.DescriptorSetLayout, error) {
	return 0, nil
}
func (r *fakeResourceManager) ReleaseDescriptorSetLayout(h external.DescriptorSetLayoutHandle) error {
	return nil
}

func (r *fakeResourceManager) CreatePipeline(debugName string, info vk.GraphicsPipelineCreateInfo) (external.PipelineHandle, error) {
	r.nextPipeline++
	h := external.PipelineHandle{Index: r.nextPipeline, Version: 1}
	r.pipelines[h] = vk.Pipeline(r.nextPipeline)
	return h, nil
}
func (r *fakeResourceManager) Pipeline(h external.PipelineHandle) (vk.Pipeline, error) {
	return r.pipelines[h], nil
}
func (r *fakeResourceManager) ReleasePipeline(h external.PipelineHandle) error {
	delete(r.pipelines, h)
	return nil
}

// fakeContext is a minimal external.Context wrapping a fakeResourceManager.
type fakeContext struct {
	resMgr *fakeResourceManager
}

func newFakeContext() *fakeContext {
	return &fakeContext{resMgr: newFakeResourceManager()}
}

func (c *fakeContext) Device() vk.Device                                   { return 0 }
func (c *fakeContext) GraphicsQueue() vk.Queue                             { return 0 }
func (c *fakeContext) GraphicsQueueFamily() uint32                        { return 0 }
func (c *fakeContext) CommandPool() vk.CommandPool                         { return 0 }
func (c *fakeContext) DefaultDescriptorSetLayout() vk.DescriptorSetLayout { return 0 }
func (c *fakeContext) DefaultPipelineLayout() vk.PipelineLayout           { return 0 }
func (c *fakeContext) DefaultSampler() vk.Sampler                         { return 0 }
func (c *fakeContext) Resources() external.ResourceManager                { return c.resMgr }

// fakeCommandList records every barrier/begin/end call it receives so
// tests can assert on the exact sequence of recorded commands.
type fakeCommandList struct {
	barrierCalls  int
	barriers      [][]vk.ImageMemoryBarrier
	beginCalls    int
	endCalls      int
	renderingInfo []vk.RenderingInfo
}

func (c *fakeCommandList) Raw() vk.CommandBuffer { return 0 }

func (c *fakeCommandList) PipelineBarrier(src, dst vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	c.barrierCalls++
	c.barriers = append(c.barriers, barriers)
}

func (c *fakeCommandList) BeginRendering(info vk.RenderingInfo) {
	c.beginCalls++
	c.renderingInfo = append(c.renderingInfo, info)
}

func (c *fakeCommandList) EndRendering() { c.endCalls++ }
