package framegraph

import (
	"fmt"

	"github.com/coryengine/cory/slotmap"
)

// textureOwner is the phantom owner type for texture handles minted by a
// TextureManager — see slotmap.TypedHandle.
type textureOwner struct{}

// TextureHandle addresses a texture entry owned by a TextureManager.
type TextureHandle = slotmap.TypedHandle[textureResource, textureOwner]

// TransientTextureHandle names a specific logical version of a texture.
// version is a write counter: reading version v means "the value after v
// writes have been applied"; version 0 is the texture's initial state
// (either freshly declared or externally registered).
type TransientTextureHandle struct {
	Texture TextureHandle
	Version uint32
}

// String formats the handle as "{index, version}@logicalVersion".
func (h TransientTextureHandle) String() string {
	return fmt.Sprintf("%s@%d", h.Texture.String(), h.Version)
}

// write returns the handle one version ahead of h, representing "the
// value this task is about to produce".
func (h TransientTextureHandle) write() TransientTextureHandle {
	return TransientTextureHandle{Texture: h.Texture, Version: h.Version + 1}
}

// readWrite is an alias for write: the builder records a Read of h
// separately before calling this to obtain the produced version.
func (h TransientTextureHandle) readWrite() TransientTextureHandle {
	return h.write()
}
