package framegraph

import (
	"fmt"

	"github.com/coryengine/cory/external"
	"github.com/coryengine/cory/gfx"
)

// Framegraph is the single entry point for declaring one frame's tasks,
// resolving their dependencies, and recording the resulting command
// stream. A fresh Framegraph (or a RetireImmediate'd one) corresponds to
// the source's per-frame graph instance.
type Framegraph struct {
	ctx           external.Context
	textures      *TextureManager
	pipelineCache *PipelineCache

	tasks           []*taskInfo
	declaredOutputs []TransientTextureHandle
}

// Option configures a Framegraph at construction time.
type Option func(*Framegraph)

// NewFramegraph creates an empty framegraph bound to ctx. ctx.Resources()
// backs the texture manager and, unless overridden with
// WithPipelineCache, a freshly created pipeline cache.
func NewFramegraph(ctx external.Context, opts ...Option) *Framegraph {
	fg := &Framegraph{
		ctx:      ctx,
		textures: NewTextureManager(ctx.Resources()),
	}
	for _, opt := range opts {
		opt(fg)
	}
	if fg.pipelineCache == nil {
		fg.pipelineCache = NewPipelineCache(ctx.Resources())
	}
	return fg
}

// Textures exposes the framegraph's texture manager, e.g. for a caller
// that needs to register an external swapchain image before declaring
// any tasks.
func (fg *Framegraph) Textures() *TextureManager { return fg.textures }

// PipelineCache exposes the framegraph's pipeline cache, e.g. so a task's
// ExecuteFunc can call a TransientRenderPass's Begin directly.
func (fg *Framegraph) PipelineCache() *PipelineCache { return fg.pipelineCache }

// RegisterExternal is a convenience forward to the texture manager for
// wrapping a caller-owned image (such as the current swapchain image) as
// a framegraph texture.
func (fg *Framegraph) RegisterExternal(info TextureInfo, lastAccess gfx.AccessType, image external.ImageHandle, view external.ImageViewHandle) TextureHandle {
	return fg.textures.RegisterExternal(info, lastAccess, image, view)
}

// DeclareOutput marks h as a frame output: resolution treats it (and
// transitively everything that produces it) as reachable, and Record
// will not cull the task that produced it. Declaring the same texture
// twice is an error.
func (fg *Framegraph) DeclareOutput(h TransientTextureHandle) error {
	for _, o := range fg.declaredOutputs {
		if o.Texture == h.Texture {
			return fmt.Errorf("%w: %s", ErrDuplicateDeclaredOutput, h.Texture.String())
		}
	}
	fg.declaredOutputs = append(fg.declaredOutputs, h)
	return nil
}

// DeclareTask runs fn's declaration phase synchronously: fn receives a
// fresh RenderTaskBuilder and a yield closure it must call exactly once
// with its Output before returning. The task is registered into fg's
// task list in declaration order regardless of whether it survives
// later culling.
func DeclareTask[Output any](fg *Framegraph, name string, fn TaskFunc[Output]) *TaskDeclaration[Output] {
	info := &taskInfo{
		name:              name,
		state:             taskInitial,
		declarationOrder:  len(fg.tasks),
		executionPriority: -1,
	}
	b := &RenderTaskBuilder{fg: fg, info: info}

	var output Output
	yielded := false
	yield := func(v Output) {
		if yielded {
			panic(fmt.Errorf("%w: task %q", ErrDuplicateOutput, name))
		}
		yielded = true
		output = v
	}

	decl := &TaskDeclaration[Output]{info: info}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					decl.err = &TaskError{Task: name, Err: err}
					return
				}
				panic(r)
			}
		}()
		info.execute = fn(b, yield)
	}()
	if decl.err != nil {
		return decl
	}
	if !yielded {
		decl.err = &TaskError{Task: name, Err: ErrMissingYield}
		return decl
	}

	info.state = taskDeclared
	decl.output = output
	fg.tasks = append(fg.tasks, info)
	return decl
}

// ExecutionInfo summarizes one Record call for diagnostics and dot-graph
// generation.
type ExecutionInfo struct {
	Tasks     []string
	Resources []TextureHandle
}

// Record resolves the declared tasks, allocates every texture the
// schedule touches, places synchronization barriers in execution order,
// and resumes each scheduled task's ExecuteFunc in turn.
func (fg *Framegraph) Record(cl CommandList, frame *external.FrameContext) (ExecutionInfo, error) {
	scheduled, err := fg.resolve()
	if err != nil {
		return ExecutionInfo{}, err
	}

	touched := fg.touchedTextures(scheduled)
	if err := fg.textures.AllocateAll(touched); err != nil {
		return ExecutionInfo{}, err
	}

	info := ExecutionInfo{Resources: touched}
	for _, t := range scheduled {
		if err := fg.recordTask(cl, frame, t); err != nil {
			return info, err
		}
		info.Tasks = append(info.Tasks, t.name)
	}
	return info, nil
}

// recordTask synchronizes every texture the task touches into its
// declared access, coalesces the resulting barriers into one
// PipelineBarrier call, then resumes the task's ExecuteFunc.
func (fg *Framegraph) recordTask(cl CommandList, frame *external.FrameContext, t *taskInfo) error {
	t.state = taskExecuting

	var barriers []ImageBarrier
	for _, d := range t.dependencies {
		contents := Keep
		if d.kind == DepCreateWrite {
			contents = Discard
		}
		barrier, err := fg.textures.SynchronizeTexture(d.handle.Texture, d.access, contents)
		if err != nil {
			return &TaskError{Task: t.name, Err: err}
		}
		barriers = append(barriers, barrier)
	}
	emitBarriers(cl, barriers)

	if t.execute != nil {
		input := RenderInput{
			Context:        fg.ctx,
			Frame:          frame,
			TextureManager: fg.textures,
			CommandList:    cl,
		}
		err := t.execute(input)
		if t.activePass != nil {
			t.activePass.warnIfUnended()
		}
		if err != nil {
			return &TaskError{Task: t.name, Err: err}
		}
	}

	t.state = taskDone
	return nil
}

// touchedTextures returns the deduplicated set of textures any scheduled
// task's dependency addresses, in first-touched order.
func (fg *Framegraph) touchedTextures(scheduled []*taskInfo) []TextureHandle {
	seen := make(map[TextureHandle]bool)
	var out []TextureHandle
	for _, t := range scheduled {
		for _, d := range t.dependencies {
			if !seen[d.handle.Texture] {
				seen[d.handle.Texture] = true
				out = append(out, d.handle.Texture)
			}
		}
	}
	return out
}

// RetireImmediate releases every resource this framegraph allocated,
// returning it to a state where it could be reused for another frame's
// declarations. Declared tasks and outputs are discarded; the caller
// must re-declare its graph for the next frame.
func (fg *Framegraph) RetireImmediate() {
	fg.textures.Clear()
	fg.tasks = nil
	fg.declaredOutputs = nil
}
