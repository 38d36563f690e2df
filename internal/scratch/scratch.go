// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package scratch implements a growable stack buffer used to stage data whose
// final size is not known until it is complete.
//
// A Buffer is used strictly as a stack: Push reserves space at the top, and
// Pop releases space from the top and returns a view of the released region.
// The region returned by Pop is only valid until the next call to Push, since
// growing the buffer may relocate its contents.
package scratch

// DefaultSize is the initial capacity in elements of a Buffer whose initial
// size was not otherwise set.
const DefaultSize = 256

// A Buffer is a growable stack of values of type T.
// The zero value is ready for use with capacity DefaultSize.
type Buffer[T any] struct {
	buf  []T
	top  int
	init int
}

// New constructs a new empty Buffer whose backing storage will be allocated
// with room for initial elements on first use. If initial <= 0, DefaultSize
// is used.
func New[T any](initial int) *Buffer[T] { return &Buffer[T]{init: initial} }

// Len reports the number of elements currently on the stack.
func (b *Buffer[T]) Len() int { return b.top }

// Cap reports the capacity of the backing storage.
func (b *Buffer[T]) Cap() int { return len(b.buf) }

// Push reserves n elements at the top of the stack, and returns a slice of
// exactly n writable elements. The contents of the returned slice are
// unspecified and must be overwritten by the caller.
func (b *Buffer[T]) Push(n int) []T {
	if n < 0 {
		panic("scratch: negative push")
	}
	if b.top+n >= len(b.buf) {
		b.grow(b.top + n)
	}
	out := b.buf[b.top : b.top+n : b.top+n]
	b.top += n
	return out
}

// Pop releases n elements from the top of the stack and returns a slice of
// the released region. The result is only valid until the next Push.
// It panics if n exceeds the number of elements on the stack.
func (b *Buffer[T]) Pop(n int) []T {
	if n < 0 || n > b.top {
		panic("scratch: pop out of range")
	}
	b.top -= n
	return b.buf[b.top : b.top+n : b.top+n]
}

// Truncate pops everything above mark and returns the released region.
// It is shorthand for b.Pop(b.Len()-mark).
func (b *Buffer[T]) Truncate(mark int) []T { return b.Pop(b.top - mark) }

// grow enlarges the backing storage by factors of 1.5 until it has room for
// more than need elements, preserving the live prefix.
func (b *Buffer[T]) grow(need int) {
	size := len(b.buf)
	if size == 0 {
		size = b.init
		if size <= 0 {
			size = DefaultSize
		}
	}
	for need >= size {
		size += max(size>>1, 1)
	}
	nb := make([]T, size)
	copy(nb, b.buf[:b.top])
	b.buf = nb
}
