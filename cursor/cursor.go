// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
package cursor

import (
	"errors"
	"fmt"

	"github.com/creachadair/jvalue"
)

// ErrNotFound is reported when a path names an object key that is not
// present.
var ErrNotFound = errors.New("key not found")

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path(v *jvalue.Value, path ...any) (*jvalue.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a value.
// The values visited by a cursor belong to the origin, and are only valid
// until the origin is modified.
type Cursor struct {
	org *jvalue.Value
	stk []*jvalue.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *jvalue.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() *jvalue.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() *jvalue.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []*jvalue.Value {
	return append([]*jvalue.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays or objects), or functions
// (see below). If the path is valid, the element reached is returned. If the
// path cannot be completely consumed, traversal stops at the last value
// reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves to the value of the first member with that key.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an element of the array or the value of
// a member of the object. Negative indices count backward from the end (-1 is
// last, -2 second last). An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(*jvalue.Value) (*jvalue.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Type() != jvalue.Object {
				return c.setErrorf("cannot traverse %v with %q: %w", cur.Type(), t, jvalue.ErrTypeMismatch)
			}
			next, ok := cur.Find(t)
			if !ok {
				return c.setErrorf("%w: %q", ErrNotFound, t)
			}
			cur = c.push(next)

		case int:
			var next *jvalue.Value
			var err error
			switch cur.Type() {
			case jvalue.Array:
				n, _ := cur.ArrayLen()
				next, err = cur.Elem(fixBound(n, t))
			case jvalue.Object:
				n, _ := cur.ObjectLen()
				next, err = cur.MemberValue(fixBound(n, t))
			default:
				return c.setErrorf("cannot traverse %v with %d: %w", cur.Type(), t, jvalue.ErrTypeMismatch)
			}
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case func(*jvalue.Value) (*jvalue.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *jvalue.Value) *jvalue.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

// fixBound maps a negative index i to its offset from the end of a sequence
// of length n. Other values are returned unchanged.
func fixBound(n, i int) int {
	if i < 0 {
		return i + n
	}
	return i
}
