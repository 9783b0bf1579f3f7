package gfx

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// AccessType names a single pipeline-stage + memory-access + image-layout
// combination. Barrier emission never juggles the three independently —
// it looks up the combination by name, which is what keeps task code
// from accidentally producing an inconsistent (stage, access, layout)
// tuple.
type AccessType int

const (
	AccessNone AccessType = iota

	// Color attachment access.
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessColorAttachmentReadWrite
	AccessResolveAttachmentWrite

	// Depth/stencil attachment access.
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessDepthStencilAttachmentReadWrite
	AccessDepthAttachmentReadOnly
	AccessInputAttachmentRead

	// Shader resource access, broken out per stage because the stage mask
	// is part of the barrier.
	AccessVertexShaderReadSampledImage
	AccessVertexShaderReadUniformBuffer
	AccessFragmentShaderReadSampledImage
	AccessFragmentShaderReadStorageImage
	AccessFragmentShaderWriteStorageImage
	AccessFragmentShaderReadWriteStorageImage
	AccessFragmentShaderReadUniformBuffer
	AccessComputeShaderReadSampledImage
	AccessComputeShaderReadStorageImage
	AccessComputeShaderWriteStorageImage
	AccessComputeShaderReadWriteStorageImage
	AccessComputeShaderReadUniformBuffer

	// Transfer and host access.
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite

	// Indirect draw/dispatch parameter reads.
	AccessIndirectCommandRead

	// Presentation — the layout a swapchain image must be in before
	// vkQueuePresentKHR.
	AccessPresent
)

// Layout is a barrier-emission hint distinguishing "use whatever layout
// is optimal for the access type" from "force VK_IMAGE_LAYOUT_GENERAL",
// e.g. when a texture is bound as both a sampled image and a storage
// image within the same task and no single optimal layout covers both.
type Layout int

const (
	// LayoutOptimal resolves to the AccessType's natural optimal layout.
	LayoutOptimal Layout = iota
	// LayoutGeneral forces VK_IMAGE_LAYOUT_GENERAL regardless of access type.
	LayoutGeneral
)

// accessMeta is the static metadata carried by every AccessType value.
type accessMeta struct {
	stageMask  vk.PipelineStageFlags
	accessMask vk.AccessFlags
	imageLayout vk.ImageLayout
	isWrite    bool
}

var accessTable = map[AccessType]accessMeta{
	AccessNone: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
		accessMask:  0,
		imageLayout: vk.ImageLayoutUndefined,
	},
	AccessColorAttachmentRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		accessMask:  vk.AccessFlags(vk.AccessColorAttachmentReadBit),
		imageLayout: vk.ImageLayoutColorAttachmentOptimal,
	},
	AccessColorAttachmentWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		accessMask:  vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		imageLayout: vk.ImageLayoutColorAttachmentOptimal,
		isWrite:     true,
	},
	AccessColorAttachmentReadWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		accessMask:  vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
		imageLayout: vk.ImageLayoutColorAttachmentOptimal,
		isWrite:     true,
	},
	AccessResolveAttachmentWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		accessMask:  vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		imageLayout: vk.ImageLayoutColorAttachmentOptimal,
		isWrite:     true,
	},
	AccessDepthStencilAttachmentRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
		accessMask:  vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit),
		imageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
	},
	AccessDepthStencilAttachmentWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
		accessMask:  vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit),
		imageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
		isWrite:     true,
	},
	AccessDepthStencilAttachmentReadWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
		accessMask:  vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit),
		imageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
		isWrite:     true,
	},
	AccessDepthAttachmentReadOnly: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
		accessMask:  vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit),
		imageLayout: vk.ImageLayoutDepthStencilReadOnlyOptimal,
	},
	AccessInputAttachmentRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessInputAttachmentReadBit),
		imageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	},
	AccessVertexShaderReadSampledImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit),
		imageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	},
	AccessVertexShaderReadUniformBuffer: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessUniformReadBit),
		imageLayout: vk.ImageLayoutUndefined,
	},
	AccessFragmentShaderReadSampledImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit),
		imageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	},
	AccessFragmentShaderReadStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit),
		imageLayout: vk.ImageLayoutGeneral,
	},
	AccessFragmentShaderWriteStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderWriteBit),
		imageLayout: vk.ImageLayoutGeneral,
		isWrite:     true,
	},
	AccessFragmentShaderReadWriteStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessShaderWriteBit),
		imageLayout: vk.ImageLayoutGeneral,
		isWrite:     true,
	},
	AccessFragmentShaderReadUniformBuffer: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessUniformReadBit),
		imageLayout: vk.ImageLayoutUndefined,
	},
	AccessComputeShaderReadSampledImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit),
		imageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	},
	AccessComputeShaderReadStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit),
		imageLayout: vk.ImageLayoutGeneral,
	},
	AccessComputeShaderWriteStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderWriteBit),
		imageLayout: vk.ImageLayoutGeneral,
		isWrite:     true,
	},
	AccessComputeShaderReadWriteStorageImage: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessShaderWriteBit),
		imageLayout: vk.ImageLayoutGeneral,
		isWrite:     true,
	},
	AccessComputeShaderReadUniformBuffer: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		accessMask:  vk.AccessFlags(vk.AccessUniformReadBit),
		imageLayout: vk.ImageLayoutUndefined,
	},
	AccessTransferRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		accessMask:  vk.AccessFlags(vk.AccessTransferReadBit),
		imageLayout: vk.ImageLayoutTransferSrcOptimal,
	},
	AccessTransferWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		accessMask:  vk.AccessFlags(vk.AccessTransferWriteBit),
		imageLayout: vk.ImageLayoutTransferDstOptimal,
		isWrite:     true,
	},
	AccessHostRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageHostBit),
		accessMask:  vk.AccessFlags(vk.AccessHostReadBit),
		imageLayout: vk.ImageLayoutGeneral,
	},
	AccessHostWrite: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageHostBit),
		accessMask:  vk.AccessFlags(vk.AccessHostWriteBit),
		imageLayout: vk.ImageLayoutGeneral,
		isWrite:     true,
	},
	AccessIndirectCommandRead: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageDrawIndirectBit),
		accessMask:  vk.AccessFlags(vk.AccessIndirectCommandReadBit),
		imageLayout: vk.ImageLayoutUndefined,
	},
	AccessPresent: {
		stageMask:   vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit),
		accessMask:  0,
		imageLayout: vk.ImageLayoutPresentSrcKhr,
	},
}

// StageMask returns the pipeline stage(s) at which this access occurs.
func (a AccessType) StageMask() vk.PipelineStageFlags { return accessTable[a].stageMask }

// AccessMask returns the memory access flags for this access.
func (a AccessType) AccessMask() vk.AccessFlags { return accessTable[a].accessMask }

// ImageLayout returns the layout an image must be in for this access,
// ignoring any LayoutGeneral override — see ResolveLayout.
func (a AccessType) ImageLayout() vk.ImageLayout { return accessTable[a].imageLayout }

// IsWrite reports whether this access type writes to the resource.
func (a AccessType) IsWrite() bool { return accessTable[a].isWrite }

// ResolveLayout applies a Layout hint on top of the access type's natural
// layout: LayoutOptimal keeps the natural layout, LayoutGeneral forces
// VK_IMAGE_LAYOUT_GENERAL.
func (a AccessType) ResolveLayout(hint Layout) vk.ImageLayout {
	if hint == LayoutGeneral {
		return vk.ImageLayoutGeneral
	}
	return a.ImageLayout()
}
