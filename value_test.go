// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  jvalue.Type
		want string
	}{
		{jvalue.Null, "null"},
		{jvalue.False, "false"},
		{jvalue.True, "true"},
		{jvalue.Number, "number"},
		{jvalue.String, "string"},
		{jvalue.Array, "array"},
		{jvalue.Object, "object"},
		{jvalue.Type(99), "invalid type"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("Type(%d).String(): got %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestZeroValue(t *testing.T) {
	var v jvalue.Value
	if v.Type() != jvalue.Null {
		t.Errorf("Zero value: got %v, want null", v.Type())
	}
	if got := v.JSON(); got != "null" {
		t.Errorf("Zero value: got %#q, want null", got)
	}
	v.Free() // no effect on null
	if v.Type() != jvalue.Null {
		t.Errorf("After Free: got %v, want null", v.Type())
	}
}

func TestTypeMismatch(t *testing.T) {
	values := []*jvalue.Value{
		mustParse(t, "null"),
		mustParse(t, "true"),
		mustParse(t, "1"),
		mustParse(t, `"s"`),
		mustParse(t, "[1]"),
		mustParse(t, `{"a":1}`),
	}
	type check struct {
		name string
		ok   jvalue.Type
		call func(*jvalue.Value) error
	}
	checks := []check{
		{"Number", jvalue.Number, func(v *jvalue.Value) error { _, err := v.Number(); return err }},
		{"Bytes", jvalue.String, func(v *jvalue.Value) error { _, err := v.Bytes(); return err }},
		{"StringLen", jvalue.String, func(v *jvalue.Value) error { _, err := v.StringLen(); return err }},
		{"ArrayLen", jvalue.Array, func(v *jvalue.Value) error { _, err := v.ArrayLen(); return err }},
		{"Elem", jvalue.Array, func(v *jvalue.Value) error { _, err := v.Elem(0); return err }},
		{"ObjectLen", jvalue.Object, func(v *jvalue.Value) error { _, err := v.ObjectLen(); return err }},
		{"Key", jvalue.Object, func(v *jvalue.Value) error { _, err := v.Key(0); return err }},
		{"KeyLen", jvalue.Object, func(v *jvalue.Value) error { _, err := v.KeyLen(0); return err }},
		{"MemberValue", jvalue.Object, func(v *jvalue.Value) error { _, err := v.MemberValue(0); return err }},
	}
	for _, c := range checks {
		for _, v := range values {
			err := c.call(v)
			if v.Type() == c.ok {
				if err != nil {
					t.Errorf("%s on %v: unexpected error: %v", c.name, v.Type(), err)
				}
				continue
			}
			if !errors.Is(err, jvalue.ErrTypeMismatch) {
				t.Errorf("%s on %v: got %v, want %v", c.name, v.Type(), err, jvalue.ErrTypeMismatch)
			}
			var terr *jvalue.TypeError
			if !errors.As(err, &terr) {
				t.Errorf("%s on %v: got %T, want *TypeError", c.name, v.Type(), err)
			} else if terr.Op != c.name || terr.Got != v.Type() {
				t.Errorf("%s on %v: got %+v", c.name, v.Type(), terr)
			}
		}
	}

	// Bool accepts both Boolean types.
	for _, v := range values {
		_, err := v.Bool()
		isBool := v.Type() == jvalue.True
		if isBool != (err == nil) {
			t.Errorf("Bool on %v: got error %v", v.Type(), err)
		}
	}
	if b, err := mustParse(t, "false").Bool(); err != nil || b {
		t.Errorf("Bool on false: got %v, %v", b, err)
	}
}

func TestIndexRange(t *testing.T) {
	arr := mustParse(t, `[1, 2]`)
	obj := mustParse(t, `{"a": 1}`)
	for _, i := range []int{-1, 2, 100} {
		if _, err := arr.Elem(i); !errors.Is(err, jvalue.ErrIndexRange) {
			t.Errorf("Elem(%d): got %v, want %v", i, err, jvalue.ErrIndexRange)
		}
	}
	for _, i := range []int{-1, 1} {
		if _, err := obj.Key(i); !errors.Is(err, jvalue.ErrIndexRange) {
			t.Errorf("Key(%d): got %v, want %v", i, err, jvalue.ErrIndexRange)
		}
		if _, err := obj.KeyLen(i); !errors.Is(err, jvalue.ErrIndexRange) {
			t.Errorf("KeyLen(%d): got %v, want %v", i, err, jvalue.ErrIndexRange)
		}
		if _, err := obj.MemberValue(i); !errors.Is(err, jvalue.ErrIndexRange) {
			t.Errorf("MemberValue(%d): got %v, want %v", i, err, jvalue.ErrIndexRange)
		}
	}
	_, err := arr.Elem(5)
	if got, want := err.Error(), "array index out of range: 5 (n=2)"; got != want {
		t.Errorf("Elem(5): got %q, want %q", got, want)
	}
}

func TestSetters(t *testing.T) {
	v := mustParse(t, `{"a": [1, "two", {"three": 3}]}`)

	v.SetNumber(5)
	if f, err := v.Number(); err != nil || f != 5 {
		t.Errorf("SetNumber: got %v, %v", f, err)
	}

	v.SetBool(true)
	if b, err := v.Bool(); err != nil || !b {
		t.Errorf("SetBool(true): got %v, %v", b, err)
	}
	v.SetBool(false)
	if v.Type() != jvalue.False {
		t.Errorf("SetBool(false): got %v", v.Type())
	}

	src := []byte("Hello\x00World")
	v.SetString(src)
	src[0] = 'J' // the value must hold its own copy
	if s, err := v.Bytes(); err != nil || string(s) != "Hello\x00World" {
		t.Errorf("SetString: got %q, %v", s, err)
	}
	if n, _ := v.StringLen(); n != 11 {
		t.Errorf("StringLen: got %d, want 11", n)
	}

	v.SetString(nil)
	if s, err := v.Bytes(); err != nil || s == nil || len(s) != 0 {
		t.Errorf("SetString(nil): got %q, %v; want empty", s, err)
	}

	v.SetArray(jvalue.NewNumber(1), jvalue.NewString("x"), jvalue.NewBool(false))
	if got := v.JSON(); got != `[1,"x",false]` {
		t.Errorf("SetArray: got %#q", got)
	}
	v.SetArray()
	if n, err := v.ArrayLen(); err != nil || n != 0 {
		t.Errorf("SetArray(): got %d, %v", n, err)
	}

	var inner jvalue.Value
	inner.SetArray(jvalue.NewNumber(2))
	v.SetObject(jvalue.Field("p", jvalue.NewNumber(1)), jvalue.Field("q", inner))
	if got := v.JSON(); got != `{"p":1,"q":[2]}` {
		t.Errorf("SetObject: got %#q", got)
	}
	v.SetObject()
	if n, err := v.ObjectLen(); err != nil || n != 0 {
		t.Errorf("SetObject(): got %d, %v", n, err)
	}

	v.SetNull()
	if v.Type() != jvalue.Null {
		t.Errorf("SetNull: got %v", v.Type())
	}
}

func TestFree(t *testing.T) {
	v := mustParse(t, `{"a": [1, "two", {"three": [3]}], "b": "bee"}`)
	a, _ := v.Find("a")
	inner, _ := a.Elem(2)
	three, _ := inner.Find("three")

	v.Free()
	for _, n := range []*jvalue.Value{v, a, inner, three} {
		if n.Type() != jvalue.Null {
			t.Errorf("After Free: node has type %v, want null", n.Type())
		}
	}
	v.Free() // idempotent
	if v.JSON() != "null" {
		t.Errorf("After second Free: got %v", v)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`  null `, `null`},
		{`[true, false]`, `[true,false]`},
		{`[0, -0, 1.5, 100, 1e20, 1e21, 1e-6, 1e-7, -2.5E-10]`,
			`[0,-0,1.5,100,100000000000000000000,1e+21,0.000001,1e-7,-2.5e-10]`},
		{`"a\nb\u0001\"\\\/"`, `"a\nb\u0001\"\\/"`},
		{`{"k" : [ ], "o":{ }, "": ""}`, `{"k":[],"o":{},"":""}`},
		{`{"a": 1, "a": 2}`, `{"a":1,"a":2}`},
	}
	for _, tc := range tests {
		v := mustParse(t, tc.input)
		if diff := cmp.Diff(tc.want, v.JSON()); diff != "" {
			t.Errorf("JSON %#q (-want, +got):\n%s", tc.input, diff)
		}
		if got := v.String(); got != v.JSON() {
			t.Errorf("String %#q: got %#q, want %#q", tc.input, got, v.JSON())
		}
		out, err := v.MarshalJSON()
		if err != nil {
			t.Errorf("MarshalJSON %#q: unexpected error: %v", tc.input, err)
		} else if string(out) != tc.want {
			t.Errorf("MarshalJSON %#q: got %#q, want %#q", tc.input, out, tc.want)
		}
	}
}

func TestRenderNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		var v jvalue.Value
		v.SetArray(jvalue.NewNumber(f))
		if got := v.JSON(); got != "[null]" {
			t.Errorf("JSON [%v]: got %#q, want [null]", f, got)
		}
		if out, err := v.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON [%v]: got %#q, want error", f, out)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\tb\x00", `"a\tb\u0000"`},
		{`"q"`, `"\"q\""`},
	}
	for _, tc := range tests {
		got := jvalue.Quote(tc.input)
		if got != tc.want {
			t.Errorf("Quote(%q): got %#q, want %#q", tc.input, got, tc.want)
		}
		dec, err := jvalue.Unquote([]byte(got))
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", got, err)
		} else if string(dec) != tc.input {
			t.Errorf("Unquote(%#q): got %q, want %q", got, dec, tc.input)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	tests := []struct {
		input string
		want  jvalue.ErrorKind
	}{
		{``, jvalue.MissQuotationMark},
		{`abc`, jvalue.MissQuotationMark},
		{` "abc"`, jvalue.MissQuotationMark},
		{`"abc`, jvalue.MissQuotationMark},
		{`"abc" `, jvalue.RootNotSingular},
		{`"\z"`, jvalue.InvalidStringEscape},
		{`"\uDE00"`, jvalue.InvalidUnicodeSurrogate},
	}
	for _, tc := range tests {
		got, err := jvalue.Unquote([]byte(tc.input))
		if !errors.Is(err, tc.want) {
			t.Errorf("Unquote(%#q): got %q, %v; want %v", tc.input, got, err, tc.want)
		}
	}
}
