// Package arena provides fixed-capacity, non-reclaiming allocators.
//
// Both allocators are monotonic: memory handed out is never returned or
// reused, and once the capacity is consumed every further allocation fails
// with ErrExhausted. Objects are expected to be created once and live for
// the lifetime of the process.
package arena

import (
	"errors"
	"unsafe"

	"devobj-go/x/mathx"
)

// DefaultRegionSize matches the static memory pool of the firmware builds.
const DefaultRegionSize = 1024

// wordSize is the alignment applied to every Region allocation.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

var (
	ErrExhausted   = errors.New("arena: exhausted")
	ErrInvalidSize = errors.New("arena: invalid size")
)

// Region is a bump allocator over one fixed byte region.
type Region struct {
	mem []byte
	off int
}

// NewRegion reserves a region of size bytes. size <= 0 selects DefaultRegionSize.
func NewRegion(size int) *Region {
	if size <= 0 {
		size = DefaultRegionSize
	}
	return &Region{mem: make([]byte, size)}
}

// Alloc returns the next size bytes of the region, word aligned.
func (r *Region) Alloc(size int) ([]byte, error) {
	return r.AllocAligned(size, wordSize)
}

// AllocAligned is Alloc with an explicit alignment, which must be a power
// of two.
func (r *Region) AllocAligned(size, align int) ([]byte, error) {
	if size <= 0 || !mathx.IsPow2(align) {
		return nil, ErrInvalidSize
	}
	start := mathx.AlignUp(r.off, align)
	if start > len(r.mem) || size > len(r.mem)-start {
		return nil, ErrExhausted
	}
	r.off = start + size
	return r.mem[start:r.off:r.off], nil
}

// Free is a no-op; region memory is never reclaimed.
func (r *Region) Free([]byte) {}

func (r *Region) Cap() int  { return len(r.mem) }
func (r *Region) Used() int { return r.off }

// Remaining reports the bytes still available before alignment.
func (r *Region) Remaining() int { return len(r.mem) - r.off }
