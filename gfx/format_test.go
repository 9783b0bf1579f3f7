package gfx

import (
	"testing"

	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestIsDepthFormat(t *testing.T) {
	cases := map[PixelFormat]bool{
		FormatRGBA8Unorm:           false,
		FormatDepth32Float:         true,
		FormatDepth24PlusStencil8:  true,
		FormatStencil8:             false,
	}
	for f, want := range cases {
		if got := f.IsDepthFormat(); got != want {
			t.Errorf("PixelFormat(%d).IsDepthFormat() = %v, want %v", f, got, want)
		}
	}
}

func TestIsStencilFormat(t *testing.T) {
	cases := map[PixelFormat]bool{
		FormatRGBA8Unorm:          false,
		FormatDepth32Float:        false,
		FormatDepth24PlusStencil8: true,
		FormatStencil8:            true,
	}
	for f, want := range cases {
		if got := f.IsStencilFormat(); got != want {
			t.Errorf("PixelFormat(%d).IsStencilFormat() = %v, want %v", f, got, want)
		}
	}
}

func TestIsColorFormat(t *testing.T) {
	if !FormatRGBA8Unorm.IsColorFormat() {
		t.Errorf("FormatRGBA8Unorm.IsColorFormat() = false, want true")
	}
	if FormatDepth32Float.IsColorFormat() {
		t.Errorf("FormatDepth32Float.IsColorFormat() = true, want false")
	}
	if FormatStencil8.IsColorFormat() {
		t.Errorf("FormatStencil8.IsColorFormat() = true, want false")
	}
}

func TestAspectsOfColor(t *testing.T) {
	mask := AspectsOf(FormatRGBA8Unorm)
	if mask != vk.ImageAspectFlags(vk.ImageAspectColorBit) {
		t.Errorf("AspectsOf(color) = %v, want color aspect only", mask)
	}
}

func TestAspectsOfDepthStencil(t *testing.T) {
	mask := AspectsOf(FormatDepth24PlusStencil8)
	if mask&vk.ImageAspectFlags(vk.ImageAspectDepthBit) == 0 {
		t.Errorf("AspectsOf(depth+stencil) missing depth aspect")
	}
	if mask&vk.ImageAspectFlags(vk.ImageAspectStencilBit) == 0 {
		t.Errorf("AspectsOf(depth+stencil) missing stencil aspect")
	}
}

func TestAspectsOfDepthOnly(t *testing.T) {
	mask := AspectsOf(FormatDepth32Float)
	if mask&vk.ImageAspectFlags(vk.ImageAspectStencilBit) != 0 {
		t.Errorf("AspectsOf(depth-only) unexpectedly has stencil aspect")
	}
}
