// Package external declares the collaborator interfaces the framegraph
// consumes but does not own: the device/queue/pool context, the resource
// manager that mints handles for GPU objects, compiled shaders, and the
// per-frame swapchain state. Implementations live outside this module —
// instance/device creation, swapchain acquire/present, and descriptor set
// layout policy are the caller's responsibility.
package external

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// Context gives the framegraph access to the GPU device and the handful
// of shared objects every task declaration can assume exist: the graphics
// queue, a command pool to allocate secondary buffers from, a default
// descriptor set layout and pipeline layout for tasks that don't need a
// custom one, a default sampler, and the ResourceManager that owns every
// handle-addressable GPU object.
type Context interface {
	Device() vk.Device
	GraphicsQueue() vk.Queue
	GraphicsQueueFamily() uint32
	CommandPool() vk.CommandPool

	DefaultDescriptorSetLayout() vk.DescriptorSetLayout
	DefaultPipelineLayout() vk.PipelineLayout
	DefaultSampler() vk.Sampler

	Resources() ResourceManager
}
