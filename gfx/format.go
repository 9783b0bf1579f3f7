// Package gfx holds the small vocabulary shared by every part of the
// framegraph that needs to talk about pixel formats and GPU access: the
// PixelFormat wrapper and the AccessType table barriers are derived from.
//
// It deliberately depends on github.com/gogpu/wgpu/hal/vulkan/vk for the
// concrete Vulkan format/layout/access-mask constants rather than
// reinventing them, per the engine's design note to target Vulkan
// directly instead of wrapping it behind another abstraction layer.
package gfx

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// PixelFormat wraps the driver's image format enum.
type PixelFormat vk.Format

// Formats used by the framegraph and its demo tasks. The full Vulkan
// format space is available by converting arbitrary vk.Format values to
// PixelFormat; these are the ones the engine names directly.
const (
	FormatUndefined PixelFormat = PixelFormat(vk.FormatUndefined)

	FormatRGBA8Unorm     PixelFormat = PixelFormat(vk.FormatR8g8b8a8Unorm)
	FormatRGBA8UnormSrgb PixelFormat = PixelFormat(vk.FormatR8g8b8a8Srgb)
	FormatBGRA8Unorm     PixelFormat = PixelFormat(vk.FormatB8g8r8a8Unorm)
	FormatBGRA8UnormSrgb PixelFormat = PixelFormat(vk.FormatB8g8r8a8Srgb)
	FormatRGBA16Float    PixelFormat = PixelFormat(vk.FormatR16g16b16a16Sfloat)
	FormatRGBA32Float    PixelFormat = PixelFormat(vk.FormatR32g32b32a32Sfloat)
	FormatR32Float       PixelFormat = PixelFormat(vk.FormatR32Sfloat)

	FormatDepth16Unorm         PixelFormat = PixelFormat(vk.FormatD16Unorm)
	FormatDepth32Float         PixelFormat = PixelFormat(vk.FormatD32Sfloat)
	FormatDepth24PlusStencil8  PixelFormat = PixelFormat(vk.FormatD24UnormS8Uint)
	FormatDepth32FloatStencil8 PixelFormat = PixelFormat(vk.FormatD32SfloatS8Uint)
	FormatStencil8             PixelFormat = PixelFormat(vk.FormatS8Uint)
)

// depthFormats and stencilFormats name every format this engine recognizes
// as carrying a depth or stencil aspect. Everything else is treated as
// color.
var depthFormats = map[PixelFormat]bool{
	FormatDepth16Unorm:         true,
	FormatDepth32Float:         true,
	FormatDepth24PlusStencil8:  true,
	FormatDepth32FloatStencil8: true,
}

var stencilFormats = map[PixelFormat]bool{
	FormatDepth24PlusStencil8:  true,
	FormatDepth32FloatStencil8: true,
	FormatStencil8:             true,
}

// IsDepthFormat reports whether f carries a depth aspect.
func (f PixelFormat) IsDepthFormat() bool { return depthFormats[f] }

// IsStencilFormat reports whether f carries a stencil aspect.
func (f PixelFormat) IsStencilFormat() bool { return stencilFormats[f] }

// IsColorFormat reports whether f is a color format — i.e. neither depth
// nor stencil.
func (f PixelFormat) IsColorFormat() bool {
	return !f.IsDepthFormat() && !f.IsStencilFormat()
}

// Vk returns the underlying vk.Format.
func (f PixelFormat) Vk() vk.Format { return vk.Format(f) }

// AspectsOf derives the image aspect mask implied by a format: color for
// plain color formats, depth and/or stencil for depth/stencil formats.
func AspectsOf(f PixelFormat) vk.ImageAspectFlags {
	var mask vk.ImageAspectFlags
	switch {
	case f.IsDepthFormat() || f.IsStencilFormat():
		if f.IsDepthFormat() {
			mask |= vk.ImageAspectFlags(vk.ImageAspectDepthBit)
		}
		if f.IsStencilFormat() {
			mask |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
		}
	default:
		mask = vk.ImageAspectFlags(vk.ImageAspectColorBit)
	}
	return mask
}
