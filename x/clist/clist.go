// Package clist implements a singly-linked circular list with a sentinel
// head, used as the registration substrate for device registries.
//
// Nodes live in a fixed-capacity arena and are addressed by Handle, so one
// list type backs many distinct registries without pointer arithmetic. An
// empty list is a head linked to itself. Removed nodes are unlinked but their
// slots are never reused.
//
// The list is not safe for concurrent use. Registries are populated from one
// goroutine at startup and only read afterwards.
package clist

import (
	"iter"

	"devobj-go/x/arena"
)

// Handle identifies a node. The zero Handle is the sentinel and never
// refers to a record.
type Handle = arena.Ref

type node[T any] struct {
	val  T
	next Handle
}

// List is a circular list of T.
type List[T any] struct {
	nodes *arena.Arena[node[T]]
	head  node[T] // sentinel; next == 0 means "links to itself"
	n     int
}

// New returns an empty list able to hold capacity insertions over its lifetime.
func New[T any](capacity int) *List[T] {
	return &List[T]{nodes: arena.New[node[T]](capacity)}
}

// link resolves h to its node; the zero Handle is the sentinel.
func (l *List[T]) link(h Handle) *node[T] {
	if h == 0 {
		return &l.head
	}
	return l.nodes.At(h)
}

// IsEmpty reports whether the head links to itself.
func (l *List[T]) IsEmpty() bool { return l.head.next == 0 }

// Len returns the number of linked records.
func (l *List[T]) Len() int { return l.n }

// Add inserts v immediately after the head. O(1).
func (l *List[T]) Add(v T) (Handle, error) {
	return l.insertAfter(0, v)
}

// AddTail inserts v before the head, i.e. at the end of the sequence. O(n).
func (l *List[T]) AddTail(v T) (Handle, error) {
	return l.insertAfter(l.prev(0), v)
}

func (l *List[T]) insertAfter(at Handle, v T) (Handle, error) {
	h, nd, err := l.nodes.Alloc()
	if err != nil {
		return 0, err
	}
	p := l.link(at)
	nd.val = v
	nd.next = p.next
	p.next = h
	l.n++
	return h, nil
}

// prevOf walks the ring to the node whose next is h. It returns false when h
// is not linked.
func (l *List[T]) prevOf(h Handle) (Handle, bool) {
	cur := Handle(0)
	for {
		nxt := l.link(cur).next
		if nxt == h {
			return cur, true
		}
		if nxt == 0 {
			return 0, false
		}
		cur = nxt
	}
}

func (l *List[T]) prev(h Handle) Handle {
	p, _ := l.prevOf(h)
	return p
}

// Remove unlinks h. Removing a handle that is not linked is a no-op. O(n).
func (l *List[T]) Remove(h Handle) {
	if h == 0 || l.nodes.At(h) == nil {
		return
	}
	p, ok := l.prevOf(h)
	if !ok {
		return
	}
	nd := l.link(h)
	l.link(p).next = nd.next
	nd.next = 0
	l.nodes.Free(h)
	l.n--
}

// Get returns the record at h if it is still linked.
func (l *List[T]) Get(h Handle) (T, bool) {
	var zero T
	if h == 0 || l.nodes.At(h) == nil {
		return zero, false
	}
	if _, ok := l.prevOf(h); !ok {
		return zero, false
	}
	return l.link(h).val, true
}

// Links yields the handles in list order, starting after the head.
func (l *List[T]) Links() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h := l.head.next; h != 0; h = l.link(h).next {
			if !yield(h) {
				return
			}
		}
	}
}

// All yields handles with their records in list order.
func (l *List[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for h := l.head.next; h != 0; h = l.link(h).next {
			if !yield(h, l.link(h).val) {
				return
			}
		}
	}
}
