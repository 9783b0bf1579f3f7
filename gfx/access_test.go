package gfx

import (
	"testing"

	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestAccessWriteFlags(t *testing.T) {
	writes := []AccessType{
		AccessColorAttachmentWrite,
		AccessDepthStencilAttachmentWrite,
		AccessFragmentShaderWriteStorageImage,
		AccessComputeShaderWriteStorageImage,
		AccessTransferWrite,
		AccessHostWrite,
	}
	for _, a := range writes {
		if !a.IsWrite() {
			t.Errorf("AccessType(%d).IsWrite() = false, want true", a)
		}
	}

	reads := []AccessType{
		AccessColorAttachmentRead,
		AccessFragmentShaderReadSampledImage,
		AccessTransferRead,
		AccessPresent,
		AccessNone,
	}
	for _, a := range reads {
		if a.IsWrite() {
			t.Errorf("AccessType(%d).IsWrite() = true, want false", a)
		}
	}
}

func TestAccessLayouts(t *testing.T) {
	if got := AccessColorAttachmentWrite.ImageLayout(); got != vk.ImageLayoutColorAttachmentOptimal {
		t.Errorf("ColorAttachmentWrite layout = %v, want ColorAttachmentOptimal", got)
	}
	if got := AccessFragmentShaderReadSampledImage.ImageLayout(); got != vk.ImageLayoutShaderReadOnlyOptimal {
		t.Errorf("FragmentShaderReadSampledImage layout = %v, want ShaderReadOnlyOptimal", got)
	}
	if got := AccessComputeShaderReadWriteStorageImage.ImageLayout(); got != vk.ImageLayoutGeneral {
		t.Errorf("ComputeShaderReadWriteStorageImage layout = %v, want General", got)
	}
	if got := AccessPresent.ImageLayout(); got != vk.ImageLayoutPresentSrcKhr {
		t.Errorf("Present layout = %v, want PresentSrcKhr", got)
	}
}

func TestResolveLayoutOverride(t *testing.T) {
	a := AccessColorAttachmentWrite

	if got := a.ResolveLayout(LayoutOptimal); got != vk.ImageLayoutColorAttachmentOptimal {
		t.Errorf("ResolveLayout(Optimal) = %v, want ColorAttachmentOptimal", got)
	}
	if got := a.ResolveLayout(LayoutGeneral); got != vk.ImageLayoutGeneral {
		t.Errorf("ResolveLayout(General) = %v, want General", got)
	}
}

func TestAccessStageMasksAreNonZeroExceptNone(t *testing.T) {
	all := []AccessType{
		AccessColorAttachmentRead, AccessColorAttachmentWrite, AccessColorAttachmentReadWrite,
		AccessResolveAttachmentWrite, AccessDepthStencilAttachmentRead, AccessDepthStencilAttachmentWrite,
		AccessDepthStencilAttachmentReadWrite, AccessDepthAttachmentReadOnly, AccessInputAttachmentRead,
		AccessVertexShaderReadSampledImage, AccessVertexShaderReadUniformBuffer,
		AccessFragmentShaderReadSampledImage, AccessFragmentShaderReadStorageImage,
		AccessFragmentShaderWriteStorageImage, AccessFragmentShaderReadWriteStorageImage,
		AccessFragmentShaderReadUniformBuffer, AccessComputeShaderReadSampledImage,
		AccessComputeShaderReadStorageImage, AccessComputeShaderWriteStorageImage,
		AccessComputeShaderReadWriteStorageImage, AccessComputeShaderReadUniformBuffer,
		AccessTransferRead, AccessTransferWrite, AccessHostRead, AccessHostWrite,
		AccessIndirectCommandRead, AccessPresent,
	}
	for _, a := range all {
		if a.StageMask() == 0 {
			t.Errorf("AccessType(%d).StageMask() = 0, want nonzero", a)
		}
	}
}
