package slotmap

import "fmt"

// invalidIndex is the one index Valid rejects. SlotMap never mints a
// Handle carrying it.
const invalidIndex = ^uint32(0)

// Handle addresses a single slot in a SlotMap by index and generation.
// The zero Handle is {index 0, version 0}: Valid reports true for it, and
// Get resolves it to slot 0 while that slot is live at version 0. It is
// not a sentinel; TypedHandle tracks validity with its own flag.
//
// Conceptually each occupied slot carries a header of {version:31, free:1,
// index:32}; Handle itself only exposes the {index, version} half that
// callers need to address and validate a slot. The free bit lives on the
// slot, not the handle — a stale handle simply fails to match on Get.
type Handle struct {
	index   uint32
	version uint32
}

// Index returns the slot index this handle addresses.
func (h Handle) Index() uint32 { return h.index }

// Version returns the generation this handle was minted for.
func (h Handle) Version() uint32 { return h.version }

// Valid reports whether the handle could possibly address a real slot —
// it does not check whether that slot is still occupied by this
// generation; use SlotMap.Get for that.
func (h Handle) Valid() bool { return h.index != invalidIndex }

// String formats the handle as "{index, version}", matching the debug
// format used for typed handles throughout the engine.
func (h Handle) String() string {
	if !h.Valid() {
		return "{invalid}"
	}
	return fmt.Sprintf("{%d, %d}", h.index, h.version)
}

func nextHandle(index, version uint32) Handle {
	return Handle{index: index, version: version}
}
