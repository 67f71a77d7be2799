package arena

import (
	"errors"
	"testing"
)

func TestRegionBumpAndExhaust(t *testing.T) {
	r := NewRegion(4 * wordSize)
	a, err := r.Alloc(1)
	if err != nil || len(a) != 1 {
		t.Fatalf("first alloc: %v len=%d", err, len(a))
	}
	b, err := r.Alloc(wordSize)
	if err != nil {
		t.Fatalf("second alloc: %v", err)
	}
	if r.Used() != 2*wordSize {
		t.Fatalf("used=%d want %d (aligned)", r.Used(), 2*wordSize)
	}
	b[0] = 0xAA
	if a[0] != 0 {
		t.Fatal("allocations overlap")
	}
	if _, err := r.Alloc(2*wordSize + 1); !errors.Is(err, ErrExhausted) {
		t.Fatalf("want exhausted, got %v", err)
	}
	// Exact fit still succeeds; then the region is permanently empty.
	if _, err := r.Alloc(2 * wordSize); err != nil {
		t.Fatalf("exact fit: %v", err)
	}
	if _, err := r.Alloc(1); !errors.Is(err, ErrExhausted) {
		t.Fatalf("want exhausted, got %v", err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining=%d", r.Remaining())
	}
}

func TestRegionFreeDoesNotReclaim(t *testing.T) {
	r := NewRegion(0)
	if r.Cap() != DefaultRegionSize {
		t.Fatalf("cap=%d", r.Cap())
	}
	p, _ := r.Alloc(16)
	used := r.Used()
	r.Free(p)
	if r.Used() != used {
		t.Fatal("free changed usage")
	}
	if _, err := r.Alloc(0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("want invalid size, got %v", err)
	}
}

func TestTypedArena(t *testing.T) {
	type rec struct{ v int }
	a := New[rec](2)
	r1, p1, err := a.Alloc()
	if err != nil || r1 == 0 {
		t.Fatalf("alloc 1: ref=%d err=%v", r1, err)
	}
	p1.v = 7
	r2, _, err := a.Alloc()
	if err != nil || r2 == r1 {
		t.Fatalf("alloc 2: ref=%d err=%v", r2, err)
	}
	if _, _, err := a.Alloc(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("want exhausted, got %v", err)
	}
	if a.At(r1).v != 7 {
		t.Fatal("At returned wrong slot")
	}
	if a.At(0) != nil || a.At(99) != nil {
		t.Fatal("invalid refs must resolve to nil")
	}
	a.Free(r1)
	if a.Len() != 2 || a.Remaining() != 0 || a.Cap() != 2 {
		t.Fatalf("len=%d rem=%d cap=%d", a.Len(), a.Remaining(), a.Cap())
	}
}

func TestRegionAllocAligned(t *testing.T) {
	r := NewRegion(64)
	if _, err := r.AllocAligned(3, 1); err != nil {
		t.Fatal(err)
	}
	b, err := r.AllocAligned(4, 16)
	if err != nil {
		t.Fatal(err)
	}
	if r.Used() != 20 || len(b) != 4 {
		t.Fatalf("used=%d len=%d", r.Used(), len(b))
	}
	if _, err := r.AllocAligned(1, 3); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("got %v", err)
	}
	if _, err := r.AllocAligned(1, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("got %v", err)
	}
}
