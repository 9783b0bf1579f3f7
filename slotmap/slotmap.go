package slotmap

// chunkSize is the number of slots allocated per chunk. Chunks are never
// moved or resized once allocated, which is what makes pointers returned
// by Get stable for the lifetime of the slot.
const chunkSize = 64

type slot[T any] struct {
	version uint32
	free    bool
	value   T
}

type chunk[T any] struct {
	slots [chunkSize]slot[T]
}

// SlotMap is a generational, O(1) associative store. It hands out Handles
// on Insert and invalidates them on Release or Update, while keeping the
// address of every live value stable for as long as the value lives.
//
// The zero value is an empty, usable SlotMap; New returns a pointer to one.
type SlotMap[T any] struct {
	chunks   []*chunk[T]
	freeList []uint32
	count    int
}

// New creates an empty SlotMap.
func New[T any]() *SlotMap[T] {
	return &SlotMap[T]{}
}

// Insert stores x and returns a handle to it.
func (m *SlotMap[T]) Insert(x T) Handle {
	return m.Emplace(x)
}

// Emplace stores x and returns a handle to it. It exists alongside Insert
// to mirror the emplace/insert split of the source slot map, where
// emplace forwards constructor arguments directly into slot storage;
// in Go both simply take the value.
func (m *SlotMap[T]) Emplace(x T) Handle {
	idx := m.takeFreeIndex()
	s := m.slotAt(idx)
	s.value = x
	s.free = false
	return nextHandle(idx, s.version)
}

// takeFreeIndex pops an index off the free list, growing by one chunk
// (and seeding the rest of its slots onto the free list) if none are
// available. A slot's version is never reset here: it only moves
// forward, on Release, Update and Clear, so two handles minted for the same index across
// different release/reuse cycles never collide.
func (m *SlotMap[T]) takeFreeIndex() (index uint32) {
	if len(m.freeList) == 0 {
		base := uint32(len(m.chunks)) * chunkSize
		c := &chunk[T]{}
		for i := uint32(chunkSize - 1); i > 0; i-- {
			c.slots[i].free = true
			m.freeList = append(m.freeList, base+i)
		}
		m.chunks = append(m.chunks, c)
		m.count++
		return base
	}

	n := len(m.freeList) - 1
	idx := m.freeList[n]
	m.freeList = m.freeList[:n]
	m.count++
	return idx
}

// Get returns a pointer to the value addressed by h. The pointer is
// stable until the slot is released or updated.
func (m *SlotMap[T]) Get(h Handle) (*T, error) {
	s, err := m.slotFor(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Update invalidates h by bumping the slot's version, optionally
// replacing the stored value, and returns a fresh handle to the same
// slot and value.
func (m *SlotMap[T]) Update(h Handle, newValue ...T) (Handle, error) {
	s, err := m.slotFor(h)
	if err != nil {
		return Handle{}, err
	}
	if len(newValue) > 0 {
		s.value = newValue[0]
	}
	s.version++
	return nextHandle(h.index, s.version), nil
}

// Release destroys the value at h and returns its slot to the free list.
// Subsequent Get/Update/Release calls with h (or any handle sharing its
// index and version) fail with ErrStaleHandle.
func (m *SlotMap[T]) Release(h Handle) error {
	s, err := m.slotFor(h)
	if err != nil {
		return err
	}
	var zero T
	s.value = zero
	s.version++
	s.free = true
	m.freeList = append(m.freeList, h.index)
	m.count--
	return nil
}

// Size returns the number of live (non-free) entries.
func (m *SlotMap[T]) Size() int { return m.count }

// Empty reports whether the slot map holds no live entries.
func (m *SlotMap[T]) Empty() bool { return m.count == 0 }

// Clear releases every live entry. Chunk storage is kept for reuse.
func (m *SlotMap[T]) Clear() {
	for ci, c := range m.chunks {
		for si := range c.slots {
			s := &c.slots[si]
			if s.free {
				continue
			}
			var zero T
			s.value = zero
			s.version++
			s.free = true
			m.freeList = append(m.freeList, uint32(ci)*chunkSize+uint32(si))
		}
	}
	m.count = 0
}

// Range calls fn for every live entry, in storage order, skipping free
// slots. Iteration stops early if fn returns false.
func (m *SlotMap[T]) Range(fn func(Handle, *T) bool) {
	for ci, c := range m.chunks {
		for si := range c.slots {
			s := &c.slots[si]
			if s.free {
				continue
			}
			h := nextHandle(uint32(ci)*chunkSize+uint32(si), s.version)
			if !fn(h, &s.value) {
				return
			}
		}
	}
}

func (m *SlotMap[T]) slotAt(index uint32) *slot[T] {
	ci := index / chunkSize
	si := index % chunkSize
	return &m.chunks[ci].slots[si]
}

func (m *SlotMap[T]) slotFor(h Handle) (*slot[T], error) {
	if !h.Valid() {
		return nil, ErrStaleHandle
	}
	ci := h.index / chunkSize
	if ci >= uint32(len(m.chunks)) {
		return nil, ErrOutOfRange
	}
	s := m.slotAt(h.index)
	if s.free || s.version != h.version {
		return nil, ErrStaleHandle
	}
	return s, nil
}
