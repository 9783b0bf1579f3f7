package framegraph

import (
	"github.com/coryengine/cory/external"
	"github.com/coryengine/cory/gfx"
)

// taskState models the two-phase coroutine lifecycle from the design
// note as a small hand-rolled state machine, since Go has no compiler
// coroutine machinery to lean on: Initial is pre-declaration, Declared
// means the task yielded its Output and is waiting to be scheduled,
// Executing/Done bracket the resume-and-record phase.
type taskState int

const (
	taskInitial taskState = iota
	taskDeclared
	taskExecuting
	taskDone
	taskCulled
)

// RenderInput is handed to a task's execute closure when the framegraph
// resumes it during Record. It bundles everything the closure needs to
// record commands: the shared Context, this frame's FrameContext, the
// framegraph's TextureManager, and the CommandList to record into.
type RenderInput struct {
	Context        external.Context
	Frame          *external.FrameContext
	TextureManager *TextureManager
	CommandList    CommandList
}

// ExecuteFunc is the boxed closure for a task's second phase: it records
// draw/dispatch commands given the resolved RenderInput. It corresponds
// to the coroutine body that runs after `co_await finishDeclaration()`.
type ExecuteFunc func(RenderInput) error

// TaskFunc is the declaration-phase closure a caller supplies to
// DeclareTask. It receives a RenderTaskBuilder to record dependencies
// through and a yield function that must be called exactly once with the
// task's Output before returning. It returns the ExecuteFunc to run if
// this task survives culling (nil if the task has nothing to record,
// e.g. a pure resource-declaration task).
type TaskFunc[Output any] func(b *RenderTaskBuilder, yield func(Output)) ExecuteFunc

// TaskDeclaration holds the result of calling a TaskFunc: its declared
// Output, the deferred ExecuteFunc, and the bookkeeping the resolver
// needs. It corresponds to the source's TaskDeclaration<Output>.
type TaskDeclaration[Output any] struct {
	info    *taskInfo
	output  Output
	err     error
}

// Output returns the task's declared output. Calling it more than once
// is idempotent and never re-runs the declaration closure, matching the
// coroutine contract's "resumed at most once" guarantee — here the
// closure already ran synchronously inside DeclareTask, so Output simply
// replays the captured result.
func (t *TaskDeclaration[Output]) Output() (Output, error) {
	return t.output, t.err
}

// Name returns the declared task's name.
func (t *TaskDeclaration[Output]) Name() string { return t.info.name }

// taskInfo is the framegraph's untyped bookkeeping record for one task —
// the Go analogue of the source's RenderTaskInfo, minus the Output type
// parameter so the resolver can hold a homogeneous slice of tasks.
type taskInfo struct {
	name         string
	dependencies []dependency
	execute      ExecuteFunc
	state        taskState

	// activePass is set by TransientRenderPassBuilder.Build when this
	// task's ExecuteFunc declares a dynamic-rendering pass, so recordTask
	// can warn about an unended pass once execution returns — the Go
	// stand-in for running a destructor at the end of the C++ scope that
	// owned the pass.
	activePass *TransientRenderPass

	// declarationOrder is the task's position in fg.tasks. topoSort breaks
	// ties by scanning fg.tasks, which is in this same order.
	declarationOrder int

	// executionPriority is -1 until resolution assigns it.
	executionPriority int
}

// dependencyKind classifies how a task relates to a texture version.
type dependencyKind int

const (
	DepCreateWrite dependencyKind = iota
	DepRead
	DepWrite
	DepReadWrite
)

func (k dependencyKind) String() string {
	switch k {
	case DepCreateWrite:
		return "CreateWrite"
	case DepRead:
		return "Read"
	case DepWrite:
		return "Write"
	case DepReadWrite:
		return "ReadWrite"
	default:
		return "Unknown"
	}
}

func (k dependencyKind) isProducer() bool {
	return k == DepCreateWrite || k == DepWrite || k == DepReadWrite
}

func (k dependencyKind) isConsumer() bool {
	return k == DepRead || k == DepReadWrite
}

// dependency names one texture-version relationship a task declared.
type dependency struct {
	kind   dependencyKind
	handle TransientTextureHandle
	access gfx.AccessType
}
