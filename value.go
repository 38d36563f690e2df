// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"slices"

	"go4.org/mem"
)

// Type is the type of a JSON value.
type Type byte

// Constants defining the valid Type values.
const (
	Null   Type = iota // the constant null
	False              // the constant false
	True               // the constant true
	Number             // a floating-point number
	String             // a string
	Array              // an array of values
	Object             // an object of key-value members
)

var typeStr = [...]string{
	Null:   "null",
	False:  "false",
	True:   "true",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return "invalid type"
	}
	return typeStr[t]
}

// A Value is a JSON value. The zero Value is null.
//
// A Value owns the storage for its string contents, and for the elements or
// members of an array or object. Setting a new value of any type releases
// the previous contents. Values must not be copied once they have children,
// except by transferring ownership (see SetArray and SetObject).
type Value struct {
	typ Type
	num float64  // Number
	str []byte   // String
	arr []Value  // Array
	obj []Member // Object
}

// A Member is a single key-value pair belonging to an Object.
//
// Keys are not required to be unique: The parser preserves all members of an
// object, including those with duplicate keys, in the order they occur.
type Member struct {
	Key   []byte
	Value Value
}

// Field constructs a Member with the given key and value.
func Field(key string, v Value) Member { return Member{Key: []byte(key), Value: v} }

// NewBool returns a new Bool value equal to b.
func NewBool(b bool) Value {
	var v Value
	v.SetBool(b)
	return v
}

// NewNumber returns a new Number value equal to f.
func NewNumber(f float64) Value { return Value{typ: Number, num: f} }

// NewString returns a new String value with a copy of the contents of s.
func NewString(s string) Value { return Value{typ: String, str: []byte(s)} }

// Type reports the type of v.
func (v *Value) Type() Type { return v.typ }

// Free releases the contents of v and resets it to null. If v is an array or
// object, its children are recursively freed. Calling Free on a null value
// has no effect.
func (v *Value) Free() {
	switch v.typ {
	case Array:
		for i := range v.arr {
			v.arr[i].Free()
		}
	case Object:
		for i := range v.obj {
			v.obj[i].Key = nil
			v.obj[i].Value.Free()
		}
	}
	*v = Value{}
}

// SetNull is a synonym for Free.
func (v *Value) SetNull() { v.Free() }

// Bool reports whether v is true. It reports an error if v is not a Boolean.
func (v *Value) Bool() (bool, error) {
	switch v.typ {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return false, &TypeError{Op: "Bool", Got: v.typ}
}

// SetBool replaces the contents of v with the Boolean value b.
func (v *Value) SetBool(b bool) {
	v.Free()
	if b {
		v.typ = True
	} else {
		v.typ = False
	}
}

// Number returns the numeric value of v. It reports an error if v is not a
// Number.
func (v *Value) Number() (float64, error) {
	if v.typ != Number {
		return 0, &TypeError{Op: "Number", Got: v.typ}
	}
	return v.num, nil
}

// SetNumber replaces the contents of v with the number f.
func (v *Value) SetNumber(f float64) {
	v.Free()
	v.typ, v.num = Number, f
}

// Bytes returns the contents of a String value. The result is a view of the
// storage owned by v; the caller must not modify it, and must copy it if it
// is needed after v is modified. The contents are not required to be valid
// UTF-8, and may contain NUL bytes.
func (v *Value) Bytes() ([]byte, error) {
	if v.typ != String {
		return nil, &TypeError{Op: "Bytes", Got: v.typ}
	}
	return v.str, nil
}

// StringLen returns the length in bytes of a String value.
func (v *Value) StringLen() (int, error) {
	if v.typ != String {
		return 0, &TypeError{Op: "StringLen", Got: v.typ}
	}
	return len(v.str), nil
}

// SetString replaces the contents of v with a copy of s.
func (v *Value) SetString(s []byte) {
	v.Free()
	v.typ = String
	v.str = append(make([]byte, 0, len(s)), s...)
}

// ArrayLen returns the number of elements in an Array value.
func (v *Value) ArrayLen() (int, error) {
	if v.typ != Array {
		return 0, &TypeError{Op: "ArrayLen", Got: v.typ}
	}
	return len(v.arr), nil
}

// Elem returns a pointer to the element at offset i of an Array value.
// It reports an error if v is not an array or i is out of range.
// The element is owned by v.
func (v *Value) Elem(i int) (*Value, error) {
	if v.typ != Array {
		return nil, &TypeError{Op: "Elem", Got: v.typ}
	} else if i < 0 || i >= len(v.arr) {
		return nil, indexError("array", i, len(v.arr))
	}
	return &v.arr[i], nil
}

// SetArray replaces the contents of v with an array of the given elements.
// Ownership of the elements passes to v, and the caller should not use them
// afterward.
func (v *Value) SetArray(elts ...Value) {
	v.Free()
	v.typ = Array
	if len(elts) != 0 {
		v.arr = slices.Clone(elts)
	}
}

// ObjectLen returns the number of members in an Object value.
func (v *Value) ObjectLen() (int, error) {
	if v.typ != Object {
		return 0, &TypeError{Op: "ObjectLen", Got: v.typ}
	}
	return len(v.obj), nil
}

func (v *Value) member(op string, i int) (*Member, error) {
	if v.typ != Object {
		return nil, &TypeError{Op: op, Got: v.typ}
	} else if i < 0 || i >= len(v.obj) {
		return nil, indexError("object", i, len(v.obj))
	}
	return &v.obj[i], nil
}

// Key returns the key of the member at offset i of an Object value. The
// result is a view of storage owned by v, and the caller must not modify it.
func (v *Value) Key(i int) ([]byte, error) {
	m, err := v.member("Key", i)
	if err != nil {
		return nil, err
	}
	return m.Key, nil
}

// KeyLen returns the length in bytes of the key of the member at offset i of
// an Object value.
func (v *Value) KeyLen(i int) (int, error) {
	m, err := v.member("KeyLen", i)
	if err != nil {
		return 0, err
	}
	return len(m.Key), nil
}

// MemberValue returns a pointer to the value of the member at offset i of an
// Object value. The value is owned by v.
func (v *Value) MemberValue(i int) (*Value, error) {
	m, err := v.member("MemberValue", i)
	if err != nil {
		return nil, err
	}
	return &m.Value, nil
}

// SetObject replaces the contents of v with an object having the given
// members, in order. Ownership of the members passes to v, and the caller
// should not use them afterward.
func (v *Value) SetObject(mems ...Member) {
	v.Free()
	v.typ = Object
	if len(mems) != 0 {
		v.obj = slices.Clone(mems)
	}
}

// Find returns the value of the first member of v with the given key, and
// reports whether such a member was found. Find reports false if v is not an
// object.
func (v *Value) Find(key string) (*Value, bool) {
	if v.typ == Object {
		k := mem.S(key)
		for i, m := range v.obj {
			if mem.B(m.Key).Equal(k) {
				return &v.obj[i].Value, true
			}
		}
	}
	return nil, false
}

// FindAll returns the values of all the members of v with the given key, in
// the order they occur. It returns nil if v is not an object, or has no
// members with that key.
func (v *Value) FindAll(key string) []*Value {
	if v.typ != Object {
		return nil
	}
	var out []*Value
	k := mem.S(key)
	for i, m := range v.obj {
		if mem.B(m.Key).Equal(k) {
			out = append(out, &v.obj[i].Value)
		}
	}
	return out
}
