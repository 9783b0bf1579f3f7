package framegraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coryengine/cory/slotmap"
)

// Sentinel errors representing the framegraph's error taxonomy. Each wraps
// (via errors.Is) into the structured error types below when the failure
// carries extra context — the offending (texture, version) pair, the
// cycle path, or the failing task's name.
var (
	// ErrStaleHandle is returned when a handle's version no longer matches
	// the slot it addresses — the resource was released or updated since
	// the handle was minted. It is the slot map's own sentinel, which the
	// TextureManager passes through unchanged.
	ErrStaleHandle = slotmap.ErrStaleHandle

	// ErrUnboundRead is returned when a task reads a (texture, version)
	// pair with no producer and no matching external registration.
	ErrUnboundRead = errors.New("framegraph: read of unbound texture version")

	// ErrCyclicGraph is returned when resolution finds a cycle in the
	// read-after-write dependency graph.
	ErrCyclicGraph = errors.New("framegraph: cyclic task dependency graph")

	// ErrMissingYield is returned when a task declaration finishes without
	// yielding an Output — a coroutine contract violation.
	ErrMissingYield = errors.New("framegraph: task declaration finished without yielding an output")

	// ErrDuplicateOutput is returned when a task declaration yields more
	// than one Output — a coroutine contract violation.
	ErrDuplicateOutput = errors.New("framegraph: task declaration yielded more than one output")

	// ErrAllocationFailed is returned when the texture manager cannot
	// allocate backing memory for a transient texture.
	ErrAllocationFailed = errors.New("framegraph: transient texture allocation failed")

	// ErrNoSuchOutput names the failure of declaring an output that no task
	// produces. Nothing in this package returns it: DeclareOutput accepts
	// any handle, and an output with no producer surfaces from Record as
	// an *UnboundReadError.
	ErrNoSuchOutput = errors.New("framegraph: no such declared output")

	// ErrDuplicateDeclaredOutput is returned by DeclareOutput when a
	// texture is declared as a framegraph output more than once, whatever
	// the versions of the two handles.
	ErrDuplicateDeclaredOutput = errors.New("framegraph: duplicate declared output")

	// ErrRenderPassAlreadyEnded is returned by TransientRenderPass.End
	// when called on a pass that already ended.
	ErrRenderPassAlreadyEnded = errors.New("framegraph: render pass already ended")
)

// TaskError wraps a failure that occurred while declaring or executing a
// specific task — either a coroutine contract violation or an error
// returned/panicked by the task's own code.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("framegraph: task %q failed: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// CycleError describes a detected cycle in the task dependency graph.
// Path lists, in declaration order, every scheduled task still unsorted
// when no dependency-free task remained: the tasks on the cycle and any
// task that depends on them.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicGraph, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicGraph }

// UnboundReadError names the offending texture and version for an
// ErrUnboundRead failure.
type UnboundReadError struct {
	Task    string
	Texture string
	Version uint32
}

func (e *UnboundReadError) Error() string {
	return fmt.Sprintf("%v: task %q reads %s@%d", ErrUnboundRead, e.Task, e.Texture, e.Version)
}

func (e *UnboundReadError) Unwrap() error { return ErrUnboundRead }
