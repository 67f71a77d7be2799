package buffer

import (
	"devobj-go/device"
	"devobj-go/errcode"
	"devobj-go/x/arena"
	"devobj-go/x/critical"
)

// Buffer commands (tag device.TagBuffer).
const (
	CmdPush    uint8 = 0 // data: *T or T (in)
	CmdPop     uint8 = 1 // data: *T (out)
	CmdFlush   uint8 = 2 // data: unused
	CmdIsFull  uint8 = 3 // data: *bool (out)
	CmdIsEmpty uint8 = 4 // data: *bool (out)
)

// Opcodes for device.Ioctl.
var (
	IoctlPush    = device.IOC(device.TagBuffer, CmdPush)
	IoctlPop     = device.IOC(device.TagBuffer, CmdPop)
	IoctlFlush   = device.IOC(device.TagBuffer, CmdFlush)
	IoctlIsFull  = device.IOC(device.TagBuffer, CmdIsFull)
	IoctlIsEmpty = device.IOC(device.TagBuffer, CmdIsEmpty)
)

// Init is the creation data for a buffer.
type Init[T any] struct {
	// Store backs the buffer; len(Store) is the capacity N (N >= 2).
	Store []T
	// Flags is reserved.
	Flags uint16
	// Section guards head/tail. Nil selects critical.Default().
	Section critical.Section
	// Pool, when set, supplies the descriptor. Nil allocates it normally.
	Pool *arena.Arena[Buffer[T]]
}

// Buffer is the descriptor of one circular buffer.
type Buffer[T any] struct {
	store []T
	flags uint16
	sec   critical.Section
	head  int // last written slot
	tail  int // last read slot
	dead  bool

	pool *arena.Arena[Buffer[T]]
	ref  arena.Ref
}

// Class returns the operation table for buffers of T.
func Class[T any]() device.Class { return class[T]{} }

// New creates a buffer directly, without going through device.New.
func New[T any](in *Init[T]) (*Buffer[T], error) {
	const op = "buffer.create"
	if in == nil {
		return nil, errcode.New(op, errcode.InvalidParams, "nil init")
	}
	if len(in.Store) < 2 {
		return nil, errcode.New(op, errcode.InvalidParams, "store needs at least 2 elements")
	}
	var b *Buffer[T]
	if in.Pool != nil {
		ref, p, err := in.Pool.Alloc()
		if err != nil {
			return nil, errcode.Wrap(op, errcode.Exhausted, err)
		}
		b = p
		b.pool, b.ref = in.Pool, ref
	} else {
		b = new(Buffer[T])
	}
	b.store = in.Store
	b.flags = in.Flags
	b.sec = in.Section
	if b.sec == nil {
		b.sec = critical.Default()
	}
	b.flush()
	return b, nil
}

func (b *Buffer[T]) Class() device.Class { return class[T]{} }

// Cap returns N, the number of slots in the store.
func (b *Buffer[T]) Cap() int { return len(b.store) }

func (b *Buffer[T]) next(i int) int { return (i + 1) % len(b.store) }

func (b *Buffer[T]) flush()        { b.head, b.tail = 0, 0 }
func (b *Buffer[T]) isEmpty() bool { return b.head == b.tail }
func (b *Buffer[T]) isFull() bool  { return b.next(b.head) == b.tail }

// Push appends v. A full buffer drops v and returns errcode.BufferFull
// without touching head.
func (b *Buffer[T]) Push(v T) error {
	s := b.sec.Enter()
	nxt := b.next(b.head)
	if nxt == b.tail {
		b.sec.Exit(s)
		return errcode.BufferFull
	}
	b.store[nxt] = v
	b.head = nxt
	b.sec.Exit(s)
	return nil
}

// Pop removes the oldest element into out. An empty buffer returns
// errcode.BufferEmpty and leaves out unmodified.
func (b *Buffer[T]) Pop(out *T) error {
	s := b.sec.Enter()
	if b.isEmpty() {
		b.sec.Exit(s)
		return errcode.BufferEmpty
	}
	nxt := b.next(b.tail)
	*out = b.store[nxt]
	b.tail = nxt
	b.sec.Exit(s)
	return nil
}

// release marks b dead and hands a pooled descriptor back to its arena.
func (b *Buffer[T]) release() {
	s := b.sec.Enter()
	b.dead = true
	b.sec.Exit(s)
	if b.pool != nil {
		b.pool.Free(b.ref)
	}
}

func (b *Buffer[T]) alive() bool {
	s := b.sec.Enter()
	v := !b.dead
	b.sec.Exit(s)
	return v
}

// Flush discards the contents.
func (b *Buffer[T]) Flush() {
	s := b.sec.Enter()
	b.flush()
	b.sec.Exit(s)
}

func (b *Buffer[T]) IsFull() bool {
	s := b.sec.Enter()
	v := b.isFull()
	b.sec.Exit(s)
	return v
}

func (b *Buffer[T]) IsEmpty() bool {
	s := b.sec.Enter()
	v := b.isEmpty()
	b.sec.Exit(s)
	return v
}

// Len returns the number of queued elements.
func (b *Buffer[T]) Len() int {
	s := b.sec.Enter()
	n := (b.head - b.tail + len(b.store)) % len(b.store)
	b.sec.Exit(s)
	return n
}
