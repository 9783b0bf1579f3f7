package framegraph

import "github.com/coryengine/cory/gfx"

// RenderTaskBuilder is the per-task scratchpad a TaskFunc uses during its
// declaration phase to accumulate dependencies and, optionally, a render
// pass configuration. A fresh builder is created for each call to
// DeclareTask and is only valid for the lifetime of that call.
type RenderTaskBuilder struct {
	fg         *Framegraph
	info       *taskInfo
	renderPass *TransientRenderPassBuilder
}

// Create declares a new texture owned by this task and records a
// CreateWrite dependency on its version 0. The returned handle can be
// read or written by later tasks.
func (b *RenderTaskBuilder) Create(name string, width, height, depth uint32, format gfx.PixelFormat, writeAccess gfx.AccessType) TransientTextureHandle {
	tex := b.fg.textures.DeclareTexture(TextureInfo{
		Name:   name,
		Width:  width,
		Height: height,
		Depth:  depth,
		Format: format,
	})
	h := TransientTextureHandle{Texture: tex, Version: 0}
	b.info.dependencies = append(b.info.dependencies, dependency{
		kind:   DepCreateWrite,
		handle: h,
		access: writeAccess,
	})
	return h
}

// Read records that this task reads h at readAccess and returns the
// texture's static info.
func (b *RenderTaskBuilder) Read(h TransientTextureHandle, readAccess gfx.AccessType) (TextureInfo, error) {
	info, err := b.fg.textures.Info(h.Texture)
	if err != nil {
		return TextureInfo{}, err
	}
	b.info.dependencies = append(b.info.dependencies, dependency{
		kind:   DepRead,
		handle: h,
		access: readAccess,
	})
	return info, nil
}

// Write records a write producing h+1 at writeAccess and returns the new
// handle together with the texture's static info.
func (b *RenderTaskBuilder) Write(h TransientTextureHandle, writeAccess gfx.AccessType) (TransientTextureHandle, TextureInfo, error) {
	info, err := b.fg.textures.Info(h.Texture)
	if err != nil {
		return TransientTextureHandle{}, TextureInfo{}, err
	}
	next := h.write()
	b.info.dependencies = append(b.info.dependencies, dependency{
		kind:   DepWrite,
		handle: next,
		access: writeAccess,
	})
	return next, info, nil
}

// ReadWrite records a Read of h's current version followed by a write
// producing h+1 at access, and returns the new handle with static info.
func (b *RenderTaskBuilder) ReadWrite(h TransientTextureHandle, access gfx.AccessType) (TransientTextureHandle, TextureInfo, error) {
	info, err := b.fg.textures.Info(h.Texture)
	if err != nil {
		return TransientTextureHandle{}, TextureInfo{}, err
	}
	b.info.dependencies = append(b.info.dependencies, dependency{
		kind:   DepRead,
		handle: h,
		access: access,
	})
	next := h.readWrite()
	b.info.dependencies = append(b.info.dependencies, dependency{
		kind:   DepReadWrite,
		handle: next,
		access: access,
	})
	return next, info, nil
}

// DeclareRenderPass starts configuring a dynamic-rendering pass for this
// task. name defaults to the owning task's name when empty.
func (b *RenderTaskBuilder) DeclareRenderPass(name string) *TransientRenderPassBuilder {
	if name == "" {
		name = b.info.name
	}
	b.renderPass = newTransientRenderPassBuilder(b.fg, name, b.info)
	return b.renderPass
}
