package framegraph

import (
	"fmt"

	"github.com/coryengine/cory/external"
	"github.com/coryengine/cory/gfx"
	"github.com/coryengine/cory/slotmap"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// TextureStatus classifies how a texture's backing memory is owned.
type TextureStatus int

const (
	// StatusVirtual textures are declared but not yet allocated.
	StatusVirtual TextureStatus = iota
	// StatusAllocated textures own a VkImage + view created by Allocate.
	StatusAllocated
	// StatusExternal textures wrap a caller-owned image/view non-owningly.
	StatusExternal
)

func (s TextureStatus) String() string {
	switch s {
	case StatusAllocated:
		return "allocated"
	case StatusExternal:
		return "external"
	default:
		return "virtual"
	}
}

// TextureInfo is the immutable description of a texture: its name,
// dimensions, pixel format, and sample count.
type TextureInfo struct {
	Name        string
	Width       uint32
	Height      uint32
	Depth       uint32
	Format      gfx.PixelFormat
	SampleCount vk.SampleCountFlagBits
}

// TextureState tracks the most recently emitted access for a texture, so
// the next barrier knows where it's transitioning from.
type TextureState struct {
	LastAccess gfx.AccessType
	Status     TextureStatus
}

// textureResource is the texture manager's entry for one texture: its
// static info, its current synchronization state, and the resource-
// manager handles for its backing image and view once allocated.
type textureResource struct {
	info  TextureInfo
	state TextureState

	image     external.ImageHandle
	imageView external.ImageViewHandle
}

// SyncContents tells SynchronizeTexture whether the image's existing
// contents must survive the transition.
type SyncContents int

const (
	// Keep preserves the image's current contents across the transition.
	Keep SyncContents = iota
	// Discard allows the driver to treat the prior contents as undefined,
	// used right before a task overwrites the whole image.
	Discard
)

// ImageBarrier is the framegraph's access-type-level description of a
// pipeline barrier; translateBarrier converts it to a vk.ImageMemoryBarrier.
type ImageBarrier struct {
	PrevAccess      gfx.AccessType
	NextAccess      gfx.AccessType
	PrevLayoutHint  gfx.Layout
	NextLayoutHint  gfx.Layout
	DiscardContents bool
	Image           vk.Image
	SubresourceRange vk.ImageSubresourceRange
}

// TextureManager owns the catalog of textures used within one framegraph:
// declaration, external registration, allocation, and access-state
// tracking for barrier emission. It is framegraph-local — its mutation is
// confined to Record/RetireImmediate.
type TextureManager struct {
	resources *slotmap.Registry[textureResource, textureOwner]
	resMgr    external.ResourceManager
}

// NewTextureManager creates an empty texture manager bound to the given
// ResourceManager for actual VkImage/VkImageView creation.
func NewTextureManager(resMgr external.ResourceManager) *TextureManager {
	return &TextureManager{
		resources: slotmap.NewRegistry[textureResource, textureOwner](),
		resMgr:    resMgr,
	}
}

// DeclareTexture registers a new virtual texture; no GPU allocation
// happens until a scheduled task needs it.
func (m *TextureManager) DeclareTexture(info TextureInfo) TextureHandle {
	return m.resources.Insert(textureResource{
		info: info,
		state: TextureState{
			LastAccess: gfx.AccessNone,
			Status:     StatusVirtual,
		},
	})
}

// RegisterExternal wraps a pre-existing image/view (e.g. a swapchain
// image) as a non-owning texture entry. lastAccess records the access
// state the caller guarantees the image is already in.
func (m *TextureManager) RegisterExternal(info TextureInfo, lastAccess gfx.AccessType, image external.ImageHandle, view external.ImageViewHandle) TextureHandle {
	return m.resources.Insert(textureResource{
		info:      info,
		image:     image,
		imageView: view,
		state: TextureState{
			LastAccess: lastAccess,
			Status:     StatusExternal,
		},
	})
}

// Allocate materializes a VkImage + view for a Virtual texture. It is a
// no-op for already-Allocated or External textures.
func (m *TextureManager) Allocate(h TextureHandle) error {
	res, err := m.resources.Get(h)
	if err != nil {
		return err
	}
	if res.state.Status != StatusVirtual {
		return nil
	}

	usage := vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageInputAttachmentBit)
	if res.info.Format.IsColorFormat() {
		usage |= vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
	} else {
		usage |= vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
	}

	imgHandle, err := m.resMgr.CreateImage(external.ImageDesc{
		DebugName: res.info.Name,
		Format:    res.info.Format.Vk(),
		Extent:    vk.Extent3D{Width: res.info.Width, Height: res.info.Height, Depth: res.info.Depth},
		MipLevels: 1,
		Samples:   res.info.SampleCount,
		Usage:     usage,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAllocationFailed, res.info.Name, err)
	}

	viewHandle, err := m.resMgr.CreateImageView(external.ImageViewDesc{
		DebugName:    res.info.Name + ".view",
		Image:        imgHandle,
		Format:       res.info.Format.Vk(),
		AspectMask:   gfx.AspectsOf(res.info.Format),
		BaseMipLevel: 0,
		MipLevels:    1,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAllocationFailed, res.info.Name, err)
	}

	res.image = imgHandle
	res.imageView = viewHandle
	res.state = TextureState{LastAccess: res.state.LastAccess, Status: StatusAllocated}
	return nil
}

// AllocateAll calls Allocate for every handle, stopping at the first
// failure.
func (m *TextureManager) AllocateAll(handles []TextureHandle) error {
	for _, h := range handles {
		if err := m.Allocate(h); err != nil {
			return err
		}
	}
	return nil
}

// SynchronizeTexture computes the barrier transitioning h from its
// current lastAccess to nextAccess, then updates the stored lastAccess.
// Barriers must be emitted in execution order for this bookkeeping to
// stay correct.
func (m *TextureManager) SynchronizeTexture(h TextureHandle, nextAccess gfx.AccessType, contents SyncContents) (ImageBarrier, error) {
	res, err := m.resources.Get(h)
	if err != nil {
		return ImageBarrier{}, err
	}

	image, err := m.resMgr.Image(res.image)
	if err != nil {
		return ImageBarrier{}, err
	}

	barrier := ImageBarrier{
		PrevAccess:      res.state.LastAccess,
		NextAccess:      nextAccess,
		PrevLayoutHint:  gfx.LayoutOptimal,
		NextLayoutHint:  gfx.LayoutOptimal,
		DiscardContents: contents == Discard,
		Image:           image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     gfx.AspectsOf(res.info.Format),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	res.state.LastAccess = nextAccess
	return barrier, nil
}

// Info returns the static description of h.
func (m *TextureManager) Info(h TextureHandle) (TextureInfo, error) {
	res, err := m.resources.Get(h)
	if err != nil {
		return TextureInfo{}, err
	}
	return res.info, nil
}

// State returns the current synchronization state of h.
func (m *TextureManager) State(h TextureHandle) (TextureState, error) {
	res, err := m.resources.Get(h)
	if err != nil {
		return TextureState{}, err
	}
	return res.state, nil
}

// Image returns the underlying VkImage for h.
func (m *TextureManager) Image(h TextureHandle) (vk.Image, error) {
	res, err := m.resources.Get(h)
	if err != nil {
		return 0, err
	}
	return m.resMgr.Image(res.image)
}

// ImageView returns the underlying VkImageView for h.
func (m *TextureManager) ImageView(h TextureHandle) (vk.ImageView, error) {
	res, err := m.resources.Get(h)
	if err != nil {
		return 0, err
	}
	return m.resMgr.ImageView(res.imageView)
}

// Clear releases every Allocated image/view owned by this manager;
// External entries are left alone since this manager never owned them.
func (m *TextureManager) Clear() {
	m.resources.Range(func(h TextureHandle, res *textureResource) bool {
		if res.state.Status == StatusAllocated {
			_ = m.resMgr.ReleaseImageView(res.imageView)
			_ = m.resMgr.ReleaseImage(res.image)
		}
		return true
	})
	m.resources.Clear()
}
