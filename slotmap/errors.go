// Package slotmap implements a generational, chunked slot map: the
// associative storage substrate used by every handle-based registry in
// the framegraph (textures, shaders, pipelines, ...).
package slotmap

import "errors"

// ErrStaleHandle is returned by Get/Update/Release when a handle's version
// no longer matches the slot it addresses — the slot was released or
// updated since the handle was obtained.
var ErrStaleHandle = errors.New("slotmap: stale handle")

// ErrOutOfRange is returned when a handle's index falls outside any chunk
// the slot map has ever allocated.
var ErrOutOfRange = errors.New("slotmap: handle index out of range")
