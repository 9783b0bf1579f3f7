package framegraph

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// CommandList is the narrow recording surface the framegraph needs: pipeline
// barriers and dynamic-rendering begin/end. Tasks reach the underlying
// vk.CommandBuffer through Raw() to issue their own binds and draws —
// everything beyond barrier placement and render-pass scoping is the
// task's business, not the framegraph's.
//
// A concrete CommandList is supplied by the caller as Record's argument; this module
// never calls into Vulkan's function-pointer table itself, since creating
// and loading that table is explicitly out of scope.
type CommandList interface {
	Raw() vk.CommandBuffer
	PipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier)
	BeginRendering(info vk.RenderingInfo)
	EndRendering()
}

// translateBarrier converts a framegraph ImageBarrier, expressed in terms
// of AccessType, into the concrete vk.ImageMemoryBarrier plus the stage
// masks a PipelineBarrier call needs.
func translateBarrier(b ImageBarrier) (vk.ImageMemoryBarrier, vk.PipelineStageFlags, vk.PipelineStageFlags) {
	srcStage := b.PrevAccess.StageMask()
	dstStage := b.NextAccess.StageMask()

	oldLayout := b.PrevAccess.ResolveLayout(b.PrevLayoutHint)
	if b.DiscardContents {
		oldLayout = vk.ImageLayoutUndefined
	}
	newLayout := b.NextAccess.ResolveLayout(b.NextLayoutHint)

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       b.PrevAccess.AccessMask(),
		DstAccessMask:       b.NextAccess.AccessMask(),
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               b.Image,
		SubresourceRange:    b.SubresourceRange,
	}

	if srcStage == 0 {
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
	}
	if dstStage == 0 {
		dstStage = vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	}

	return barrier, srcStage, dstStage
}

// emitBarriers coalesces a group of barriers belonging to one task into a
// single pipeline-barrier call, unioning the stage masks the way the
// resolver's "one call per task" rule requires.
func emitBarriers(cl CommandList, barriers []ImageBarrier) {
	if len(barriers) == 0 {
		return
	}

	vkBarriers := make([]vk.ImageMemoryBarrier, 0, len(barriers))
	var srcStage, dstStage vk.PipelineStageFlags
	for _, b := range barriers {
		vb, src, dst := translateBarrier(b)
		vkBarriers = append(vkBarriers, vb)
		srcStage |= src
		dstStage |= dst
	}

	cl.PipelineBarrier(srcStage, dstStage, vkBarriers)
}
