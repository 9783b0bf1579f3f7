package slotmap

import "fmt"

// TypedHandle is a type-safe handle into a Registry[T, Owner]. The Owner
// type parameter carries no data — it exists purely so that, say, a
// TypedHandle[Texture, *TextureManager] cannot be passed where a
// TypedHandle[Shader, *ResourceManager] is expected, even though both
// ultimately wrap the same raw Handle representation.
//
// TypedHandle deliberately does not expose its raw Handle: only the
// Registry that minted it (in this package) can dereference it, which is
// what keeps outside packages from reaching into a manager's storage
// through a handle meant for a different one.
type TypedHandle[T any, Owner any] struct {
	raw   Handle
	valid bool
}

// Valid reports whether the handle was ever minted by a Registry; it does
// not imply the underlying slot is still occupied.
func (h TypedHandle[T, Owner]) Valid() bool { return h.valid }

// String formats the handle as "{index, version}".
func (h TypedHandle[T, Owner]) String() string {
	if !h.valid {
		return "{invalid}"
	}
	return fmt.Sprintf("{%d, %d}", h.raw.Index(), h.raw.Version())
}

// Registry wraps a SlotMap[T] and hands out TypedHandle[T, Owner] instead
// of raw Handles, so unrelated registries can't accidentally accept each
// other's handles at compile time.
type Registry[T any, Owner any] struct {
	slots *SlotMap[T]
}

// NewRegistry creates an empty typed registry.
func NewRegistry[T any, Owner any]() *Registry[T, Owner] {
	return &Registry[T, Owner]{slots: New[T]()}
}

// Insert stores x and returns a typed handle to it.
func (r *Registry[T, Owner]) Insert(x T) TypedHandle[T, Owner] {
	return TypedHandle[T, Owner]{raw: r.slots.Insert(x), valid: true}
}

// Get returns a pointer to the value addressed by h.
func (r *Registry[T, Owner]) Get(h TypedHandle[T, Owner]) (*T, error) {
	if !h.valid {
		return nil, ErrStaleHandle
	}
	return r.slots.Get(h.raw)
}

// Update bumps the version of h's slot, optionally replacing its value,
// and returns a fresh handle to the same slot.
func (r *Registry[T, Owner]) Update(h TypedHandle[T, Owner], newValue ...T) (TypedHandle[T, Owner], error) {
	if !h.valid {
		return TypedHandle[T, Owner]{}, ErrStaleHandle
	}
	raw, err := r.slots.Update(h.raw, newValue...)
	if err != nil {
		return TypedHandle[T, Owner]{}, err
	}
	return TypedHandle[T, Owner]{raw: raw, valid: true}, nil
}

// Release destroys the value addressed by h.
func (r *Registry[T, Owner]) Release(h TypedHandle[T, Owner]) error {
	if !h.valid {
		return ErrStaleHandle
	}
	return r.slots.Release(h.raw)
}

// Size returns the number of live entries.
func (r *Registry[T, Owner]) Size() int { return r.slots.Size() }

// Clear releases every live entry.
func (r *Registry[T, Owner]) Clear() { r.slots.Clear() }

// Range calls fn for every live entry, skipping free slots.
func (r *Registry[T, Owner]) Range(fn func(TypedHandle[T, Owner], *T) bool) {
	r.slots.Range(func(raw Handle, v *T) bool {
		return fn(TypedHandle[T, Owner]{raw: raw, valid: true}, v)
	})
}
