package arena

// Ref indexes an object inside an Arena. The zero Ref is invalid.
type Ref uint32

// Arena is a fixed-capacity typed store addressed by explicit indices.
// Slots are handed out in order and never reused.
type Arena[T any] struct {
	slots []T
	next  int
}

// New returns an arena able to hold capacity objects.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{slots: make([]T, capacity)}
}

// Alloc hands out the next zeroed slot.
func (a *Arena[T]) Alloc() (Ref, *T, error) {
	if a.next >= len(a.slots) {
		return 0, nil, ErrExhausted
	}
	i := a.next
	a.next++
	return Ref(i + 1), &a.slots[i], nil
}

// At resolves r to its slot, or nil if r was never allocated.
func (a *Arena[T]) At(r Ref) *T {
	if r == 0 || int(r) > a.next {
		return nil
	}
	return &a.slots[r-1]
}

// Free is a no-op; slots are never reused.
func (a *Arena[T]) Free(Ref) {}

func (a *Arena[T]) Len() int       { return a.next }
func (a *Arena[T]) Cap() int       { return len(a.slots) }
func (a *Arena[T]) Remaining() int { return len(a.slots) - a.next }
