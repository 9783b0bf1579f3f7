package external

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// FrameContext carries the per-frame state handed down from the swapchain
// layer: the acquired swapchain image and its command buffer. Acquiring
// the image and presenting it are both outside this module's scope — the
// framegraph reads none of these fields itself; Record hands the
// FrameContext unchanged to each task through RenderInput.Frame.
type FrameContext struct {
	Index       uint32
	FrameNumber uint64

	ColorImage     vk.Image
	ColorImageView vk.ImageView
	DepthImage     vk.Image
	DepthImageView vk.ImageView

	CommandBuffer vk.CommandBuffer

	Acquired               bool
	Rendered               bool
	InFlight               bool
	ShouldRecreateSwapchain bool
}
