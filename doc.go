// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a strict JSON parser that produces an in-memory
// tree of typed values.
//
// # Parsing
//
// Parse and ParseString convert a complete JSON document into a *Value. The
// input must consist of exactly one value, optionally surrounded by
// whitespace. No extensions to the JSON grammar (comments, trailing commas,
// NaN or Infinity) are accepted:
//
//	v, err := jvalue.ParseString(`{"name": "x", "tags": [1, 2]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// If parsing fails, the result is nil and the error has concrete type
// *SyntaxError, describing the kind and location of the first violation of
// the grammar in the input. Each kind is also an error value, so it can be
// matched with errors.Is:
//
//	if errors.Is(err, jvalue.MissColon) {
//	   log.Print("Object key without a colon")
//	}
//
// Use an Options value to limit the nesting depth of the input, or to tune
// the initial size of the parser's scratch buffers.
//
// # Values
//
// A Value holds one of the seven JSON types reported by its Type method.
// Accessors such as Number, Bytes, and Elem check the type of the value and
// report an error matching ErrTypeMismatch if it does not match:
//
//	n, err := v.Number()
//	if errors.Is(err, jvalue.ErrTypeMismatch) {
//	   // v is not a number
//	}
//
// Strings are decoded into byte slices, which may contain NUL bytes and are
// not required to be valid UTF-8 (a lone "\ud800" escape is rejected, but
// raw input bytes are copied through unchecked).
//
// Object members are kept in the order they occur in the input, including
// members with duplicate keys. Find returns the first member with a given
// key, and FindAll returns all of them.
//
// # Ownership
//
// An array or object owns its elements or members, and a string owns its
// bytes. The setters (SetNumber, SetArray, etc.) release the previous
// contents of the value before installing new ones, and Free releases the
// whole tree and resets the value to null.
package jvalue
