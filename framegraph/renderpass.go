package framegraph

import (
	"fmt"
	"hash/fnv"

	"github.com/coryengine/cory/external"
	"github.com/coryengine/cory/gfx"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// CullMode and DepthCompare mirror the original's Common.hpp dynamic-state
// enums; depth writes are a plain bool (SetDepthWrite). A transient render
// pass configures all three per-task instead of baking them into a fixed
// pipeline.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullFrontAndBack
)

// DepthCompare is the depth comparison function used when depth testing
// is enabled for a pass.
type DepthCompare int

const (
	DepthCompareDisabled DepthCompare = iota
	DepthCompareLess
	DepthCompareGreater
	DepthCompareLessOrEqual
	DepthCompareGreaterOrEqual
	DepthCompareAlways
	DepthCompareNever
)

// Rect2D is a render area in pixels. The zero value is RenderAreaAuto:
// "derive the render area from the first attachment's size".
type Rect2D struct {
	X, Y          int32
	Width, Height uint32
}

// RenderAreaAuto is the zero-value sentinel requesting that begin()
// compute the render area from the first attachment.
var RenderAreaAuto = Rect2D{}

func (r Rect2D) isAuto() bool { return r == RenderAreaAuto }

// ClearColor is a 4-component clear value for a color attachment.
type ClearColor struct{ R, G, B, A float32 }

// attachmentKind describes one color, depth, or stencil attachment: its
// texture, load/store behavior, and clear value. Depth and stencil carry
// their own scalar clear values rather than sharing a color's 4-vector.
type attachmentKind struct {
	handle   TransientTextureHandle
	loadOp   vk.AttachmentLoadOp
	storeOp  vk.AttachmentStoreOp
	access   gfx.AccessType
	clearCol ClearColor
	clearD   float32
	clearS   uint32
}

// TransientRenderPassBuilder accumulates attachment and dynamic-state
// configuration for one task's dynamic-rendering region.
type TransientRenderPassBuilder struct {
	fg   *Framegraph
	name string
	task *taskInfo

	color []attachmentKind
	depth *attachmentKind

	shaders []external.Shader

	cullMode     CullMode
	depthCompare DepthCompare
	depthWrite   bool
	renderArea   Rect2D
}

func newTransientRenderPassBuilder(fg *Framegraph, name string, task *taskInfo) *TransientRenderPassBuilder {
	return &TransientRenderPassBuilder{fg: fg, name: name, task: task}
}

// Attach adds a color attachment backed by h, cleared to clear when
// loadOp is Clear.
func (b *TransientRenderPassBuilder) Attach(h TransientTextureHandle, loadOp vk.AttachmentLoadOp, storeOp vk.AttachmentStoreOp, access gfx.AccessType, clear ClearColor) *TransientRenderPassBuilder {
	b.color = append(b.color, attachmentKind{handle: h, loadOp: loadOp, storeOp: storeOp, access: access, clearCol: clear})
	return b
}

// AttachDepth sets the pass's depth attachment.
func (b *TransientRenderPassBuilder) AttachDepth(h TransientTextureHandle, loadOp vk.AttachmentLoadOp, storeOp vk.AttachmentStoreOp, access gfx.AccessType, clearDepth float32) *TransientRenderPassBuilder {
	b.depth = &attachmentKind{handle: h, loadOp: loadOp, storeOp: storeOp, access: access, clearD: clearDepth}
	return b
}

// AttachStencil sets the clear value used for the stencil aspect of the
// depth attachment (dynamic rendering ties depth and stencil to the same
// image view).
func (b *TransientRenderPassBuilder) AttachStencil(clearStencil uint32) *TransientRenderPassBuilder {
	if b.depth != nil {
		b.depth.clearS = clearStencil
	}
	return b
}

// SetShaders configures the shader set used to build (or look up in the
// pipeline cache) this pass's pipeline.
func (b *TransientRenderPassBuilder) SetShaders(shaders ...external.Shader) *TransientRenderPassBuilder {
	b.shaders = shaders
	return b
}

func (b *TransientRenderPassBuilder) SetCullMode(m CullMode) *TransientRenderPassBuilder {
	b.cullMode = m
	return b
}

func (b *TransientRenderPassBuilder) SetDepthCompare(c DepthCompare) *TransientRenderPassBuilder {
	b.depthCompare = c
	return b
}

func (b *TransientRenderPassBuilder) SetDepthWrite(w bool) *TransientRenderPassBuilder {
	b.depthWrite = w
	return b
}

func (b *TransientRenderPassBuilder) SetRenderArea(area Rect2D) *TransientRenderPassBuilder {
	b.renderArea = area
	return b
}

// Build finalizes the configuration into a TransientRenderPass. The pass
// is registered on the owning task so recordTask can warn if the task's
// ExecuteFunc returns without ending it.
func (b *TransientRenderPassBuilder) Build() *TransientRenderPass {
	p := &TransientRenderPass{builder: b}
	if b.task != nil {
		b.task.activePass = p
	}
	return p
}

// PipelineDescriptor is the cache key for a transient render pass's
// pipeline: everything about the attachment formats and shader set that
// a VkPipeline's creation depends on.
type PipelineDescriptor struct {
	ShaderNames  string
	SampleCount  vk.SampleCountFlagBits
	ColorFormats string
	DepthFormat  vk.Format
	CullMode     CullMode
	DepthCompare DepthCompare
	DepthWrite   bool
}

// hash returns a stable 64-bit key for this descriptor, used by
// PipelineCache instead of using the struct directly as a map key so the
// cache can be extended with non-comparable fields later without
// breaking callers.
func (d PipelineDescriptor) hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s|%d|%d|%d|%v", d.ShaderNames, d.SampleCount, d.ColorFormats, d.DepthFormat, d.CullMode, d.DepthCompare, d.DepthWrite)
	return h.Sum64()
}

// PipelineCache owns every pipeline ever built for a framegraph, keyed by
// PipelineDescriptor. The source kept this as a function-local static;
// per the design note it's an owned member here instead, created once
// per Framegraph (or shared across frames by the caller) to avoid
// cross-frame leakage into global state.
type PipelineCache struct {
	resMgr    external.ResourceManager
	pipelines map[uint64]external.PipelineHandle
}

// NewPipelineCache creates an empty pipeline cache.
func NewPipelineCache(resMgr external.ResourceManager) *PipelineCache {
	return &PipelineCache{
		resMgr:    resMgr,
		pipelines: make(map[uint64]external.PipelineHandle),
	}
}

// GetOrCreate returns the cached pipeline for desc, building and caching
// one via createFn if this is the first time desc has been seen.
func (c *PipelineCache) GetOrCreate(desc PipelineDescriptor, createFn func() (vk.GraphicsPipelineCreateInfo, error)) (external.PipelineHandle, error) {
	key := desc.hash()
	if h, ok := c.pipelines[key]; ok {
		return h, nil
	}

	info, err := createFn()
	if err != nil {
		return external.PipelineHandle{}, err
	}
	h, err := c.resMgr.CreatePipeline(desc.ShaderNames, info)
	if err != nil {
		return external.PipelineHandle{}, err
	}
	c.pipelines[key] = h
	return h, nil
}

// Size reports how many distinct pipelines are cached.
func (c *PipelineCache) Size() int { return len(c.pipelines) }

// TransientRenderPass configures one dynamic-rendering region for a
// single task: no VkRenderPass/VkFramebuffer objects are created, per
// Vulkan 1.3's VK_KHR_dynamic_rendering.
type TransientRenderPass struct {
	builder  *TransientRenderPassBuilder
	hasBegun bool
}

// Begin computes sample count and render area, resolves (or builds) the
// pipeline for this pass's descriptor, and emits the begin-rendering
// command. Attachment image views and layouts come from the texture
// manager; layouts are resolved per access type with the Optimal hint.
func (p *TransientRenderPass) Begin(cl CommandList, tm *TextureManager, cache *PipelineCache) error {
	b := p.builder
	if len(b.color) == 0 && b.depth == nil {
		return fmt.Errorf("framegraph: render pass %q has no attachments", b.name)
	}

	sampleCount, err := resolveSampleCount(tm, b)
	if err != nil {
		return err
	}

	area := b.renderArea
	if area.isAuto() {
		area, err = firstAttachmentArea(tm, b)
		if err != nil {
			return err
		}
	}

	colorAttachments := make([]vk.RenderingAttachmentInfo, len(b.color))
	colorFormats := ""
	for i, ca := range b.color {
		view, err := tm.ImageView(ca.handle.Texture)
		if err != nil {
			return err
		}
		info, err := tm.Info(ca.handle.Texture)
		if err != nil {
			return err
		}
		colorFormats += fmt.Sprintf("%d,", info.Format.Vk())

		colorAttachments[i] = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   view,
			ImageLayout: ca.access.ResolveLayout(gfx.LayoutOptimal),
			LoadOp:      ca.loadOp,
			StoreOp:     ca.storeOp,
			ClearValue:  vk.ClearValueColor(ca.clearCol.R, ca.clearCol.G, ca.clearCol.B, ca.clearCol.A),
		}
	}

	renderingInfo := vk.RenderingInfo{
		SType: vk.StructureTypeRenderingInfo,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: area.X, Y: area.Y},
			Extent: vk.Extent2D{Width: area.Width, Height: area.Height},
		},
		LayerCount:           1,
		ColorAttachmentCount: uint32(len(colorAttachments)),
	}
	if len(colorAttachments) > 0 {
		renderingInfo.PColorAttachments = &colorAttachments[0]
	}

	var depthFormat vk.Format
	var depthAttachment vk.RenderingAttachmentInfo
	if b.depth != nil {
		view, err := tm.ImageView(b.depth.handle.Texture)
		if err != nil {
			return err
		}
		info, err := tm.Info(b.depth.handle.Texture)
		if err != nil {
			return err
		}
		depthFormat = info.Format.Vk()

		depthAttachment = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   view,
			ImageLayout: b.depth.access.ResolveLayout(gfx.LayoutOptimal),
			LoadOp:      b.depth.loadOp,
			StoreOp:     b.depth.storeOp,
			ClearValue:  vk.ClearValueDepthStencil(b.depth.clearD, b.depth.clearS),
		}
		renderingInfo.PDepthAttachment = &depthAttachment
		if info.Format.IsStencilFormat() {
			renderingInfo.PStencilAttachment = &depthAttachment
		}
	}

	shaderNames := ""
	for _, s := range b.shaders {
		shaderNames += s.EntryPoint() + ":" + s.Stage().String() + ","
	}

	desc := PipelineDescriptor{
		ShaderNames:  b.name + "|" + shaderNames,
		SampleCount:  sampleCount,
		ColorFormats: colorFormats,
		DepthFormat:  depthFormat,
		CullMode:     b.cullMode,
		DepthCompare: b.depthCompare,
		DepthWrite:   b.depthWrite,
	}
	if _, err := cache.GetOrCreate(desc, func() (vk.GraphicsPipelineCreateInfo, error) {
		return vk.GraphicsPipelineCreateInfo{SType: vk.StructureTypeGraphicsPipelineCreateInfo}, nil
	}); err != nil {
		return err
	}

	cl.BeginRendering(renderingInfo)
	p.hasBegun = true
	return nil
}

// End issues the end-rendering command. Calling End without a matching
// Begin, or twice, is a no-op beyond the error it returns.
func (p *TransientRenderPass) End(cl CommandList) error {
	if !p.hasBegun {
		return ErrRenderPassAlreadyEnded
	}
	cl.EndRendering()
	p.hasBegun = false
	return nil
}

// warnIfUnended logs (but does not fail the frame) when a pass was begun
// but never ended — the source's "destroyed with hasBegun=true" case.
func (p *TransientRenderPass) warnIfUnended() {
	if p.hasBegun {
		Logger().Warn("transient render pass ended implicitly", "name", p.builder.name)
		p.hasBegun = false
	}
}

func resolveSampleCount(tm *TextureManager, b *TransientRenderPassBuilder) (vk.SampleCountFlagBits, error) {
	if len(b.color) > 0 {
		info, err := tm.Info(b.color[0].handle.Texture)
		if err != nil {
			return 0, err
		}
		return sampleCountOrDefault(info.SampleCount), nil
	}
	if b.depth != nil {
		info, err := tm.Info(b.depth.handle.Texture)
		if err != nil {
			return 0, err
		}
		return sampleCountOrDefault(info.SampleCount), nil
	}
	return vk.SampleCountFlagBits(1), nil
}

func sampleCountOrDefault(s vk.SampleCountFlagBits) vk.SampleCountFlagBits {
	if s == 0 {
		return vk.SampleCountFlagBits(1)
	}
	return s
}

func firstAttachmentArea(tm *TextureManager, b *TransientRenderPassBuilder) (Rect2D, error) {
	var info TextureInfo
	var err error
	if len(b.color) > 0 {
		info, err = tm.Info(b.color[0].handle.Texture)
	} else if b.depth != nil {
		info, err = tm.Info(b.depth.handle.Texture)
	} else {
		return Rect2D{}, fmt.Errorf("framegraph: render pass %q has no attachments to derive render area from", b.name)
	}
	if err != nil {
		return Rect2D{}, err
	}
	return Rect2D{Width: info.Width, Height: info.Height}, nil
}
