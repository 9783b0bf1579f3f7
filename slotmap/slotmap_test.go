package slotmap

import "testing"

func TestInsertGet(t *testing.T) {
	m := New[string]()

	h := m.Insert("hello")
	got, err := m.Get(h)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if *got != "hello" {
		t.Errorf("Get() = %q, want %q", *got, "hello")
	}
}

func TestReleaseThenGetFails(t *testing.T) {
	m := New[int]()

	h := m.Insert(42)
	if err := m.Release(h); err != nil {
		t.Fatalf("Release() error = %v, want nil", err)
	}

	if _, err := m.Get(h); err != ErrStaleHandle {
		t.Errorf("Get() after Release error = %v, want ErrStaleHandle", err)
	}
}

func TestInsertAfterReleaseReusesSlotNewVersion(t *testing.T) {
	m := New[int]()

	h1 := m.Insert(1)
	if err := m.Release(h1); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	h2 := m.Insert(2)

	if h2.Index() != h1.Index() {
		t.Fatalf("expected slot reuse: h1.Index()=%d h2.Index()=%d", h1.Index(), h2.Index())
	}
	if h2 == h1 {
		t.Errorf("expected a new handle despite slot reuse, got identical handle %v", h2)
	}
	if h2.Version() == h1.Version() {
		t.Errorf("expected version to change on reuse, both are %d", h1.Version())
	}
}

func TestRepeatedReleaseReuseCyclesNeverCollide(t *testing.T) {
	m := New[int]()

	h1 := m.Insert(1)
	if err := m.Release(h1); err != nil {
		t.Fatalf("Release(h1) error = %v", err)
	}
	h2 := m.Insert(2)
	if err := m.Release(h2); err != nil {
		t.Fatalf("Release(h2) error = %v", err)
	}
	h3 := m.Insert(3)

	if h2.Index() != h1.Index() || h3.Index() != h2.Index() {
		t.Fatalf("expected all three handles to share a slot index: h1=%d h2=%d h3=%d", h1.Index(), h2.Index(), h3.Index())
	}
	if h2 == h3 {
		t.Fatalf("two different release/reuse cycles on the same index produced identical handles: %v", h2)
	}

	// h2 must stay stale even though it now shares every bit pattern a
	// naive pinned-sentinel implementation would reuse for h3.
	if _, err := m.Get(h2); err != ErrStaleHandle {
		t.Errorf("Get(h2) after its slot was reused = %v, want ErrStaleHandle", err)
	}
	got, err := m.Get(h3)
	if err != nil {
		t.Fatalf("Get(h3) error = %v", err)
	}
	if *got != 3 {
		t.Errorf("Get(h3) = %d, want 3", *got)
	}
}

func TestUpdateInvalidatesOldHandle(t *testing.T) {
	m := New[int]()

	h1 := m.Insert(10)
	h2, err := m.Update(h1)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := m.Get(h1); err != ErrStaleHandle {
		t.Errorf("Get(oldHandle) error = %v, want ErrStaleHandle", err)
	}
	got, err := m.Get(h2)
	if err != nil {
		t.Fatalf("Get(newHandle) error = %v", err)
	}
	if *got != 10 {
		t.Errorf("Get(newHandle) = %d, want 10 (value preserved)", *got)
	}
}

func TestUpdateWithNewValue(t *testing.T) {
	m := New[int]()

	h1 := m.Insert(10)
	h2, err := m.Update(h1, 20)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := m.Get(h2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != 20 {
		t.Errorf("Get() = %d, want 20", *got)
	}
}

func TestAddressStability(t *testing.T) {
	m := New[int]()

	// Force several chunk allocations so relocation bugs would show up.
	handles := make([]Handle, 0, chunkSize*3)
	for i := 0; i < chunkSize*3; i++ {
		handles = append(handles, m.Insert(i))
	}

	ptrs := make([]*int, len(handles))
	for i, h := range handles {
		p, err := m.Get(h)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		ptrs[i] = p
	}

	// Insert more, forcing further chunk growth, and verify earlier
	// addresses didn't move.
	for i := 0; i < chunkSize; i++ {
		m.Insert(-1)
	}

	for i, h := range handles {
		p, err := m.Get(h)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		if p != ptrs[i] {
			t.Errorf("address for handle %d changed: got %p, want %p", i, p, ptrs[i])
		}
	}
}

func TestOutOfRange(t *testing.T) {
	m := New[int]()
	m.Insert(1)

	bogus := nextHandle(1000, 0)
	if _, err := m.Get(bogus); err != ErrOutOfRange {
		t.Errorf("Get(bogus) error = %v, want ErrOutOfRange", err)
	}
}

func TestSizeEmptyClear(t *testing.T) {
	m := New[int]()
	if !m.Empty() {
		t.Fatalf("new SlotMap should be empty")
	}

	h1 := m.Insert(1)
	m.Insert(2)
	if m.Size() != 2 {
		t.Errorf("Size() = %d, want 2", m.Size())
	}

	if err := m.Release(h1); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if m.Size() != 1 {
		t.Errorf("Size() after release = %d, want 1", m.Size())
	}

	m.Clear()
	if !m.Empty() {
		t.Errorf("Empty() after Clear() = false, want true")
	}
}

func TestRangeSkipsFreeSlots(t *testing.T) {
	m := New[int]()
	h1 := m.Insert(1)
	m.Insert(2)
	m.Insert(3)
	if err := m.Release(h1); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	seen := 0
	m.Range(func(h Handle, v *int) bool {
		seen++
		if *v == 1 {
			t.Errorf("Range visited a released slot")
		}
		return true
	})
	if seen != 2 {
		t.Errorf("Range visited %d slots, want 2", seen)
	}
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Insert(i)
	}

	count := 0
	m.Range(func(h Handle, v *int) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("Range with early stop visited %d entries, want 3", count)
	}
}
