// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the specific way in which a JSON document is
// malformed. Each malformed input has exactly one ErrorKind, describing the
// first violation of the grammar encountered by the parser.
//
// ErrorKind implements the error interface, so that a *SyntaxError can be
// matched against a kind with errors.Is.
type ErrorKind int

// Constants defining the valid ErrorKind values.
const (
	ExpectValue              ErrorKind = iota + 1 // no value before end of input
	InvalidValue                                  // a value is malformed
	RootNotSingular                               // extra input after the top-level value
	NumberTooBig                                  // number magnitude out of range
	MissQuotationMark                             // string not terminated
	InvalidStringEscape                           // unknown escape after "\"
	InvalidStringChar                             // unescaped control character in string
	InvalidUnicodeHex                             // "\u" not followed by four hex digits
	InvalidUnicodeSurrogate                       // unpaired or misordered surrogate
	MissCommaOrSquareBracket                      // array element not followed by "," or "]"
	MissKey                                       // object member without a string key
	MissColon                                     // object key not followed by ":"
	MissCommaOrCurlyBracket                       // object member not followed by "," or "}"
	NestingTooDeep                                // nesting exceeds Options.MaxDepth
)

var kindStr = [...]string{
	0:                        "invalid error kind",
	ExpectValue:              "expected a value",
	InvalidValue:             "invalid value",
	RootNotSingular:          "unexpected input after value",
	NumberTooBig:             "number out of range",
	MissQuotationMark:        "missing closing quotation mark",
	InvalidStringEscape:      "invalid string escape",
	InvalidStringChar:        "invalid character in string",
	InvalidUnicodeHex:        "invalid Unicode hex digits",
	InvalidUnicodeSurrogate:  "invalid Unicode surrogate",
	MissCommaOrSquareBracket: `expected "," or "]"`,
	MissKey:                  "expected object key",
	MissColon:                `expected ":"`,
	MissCommaOrCurlyBracket:  `expected "," or "}"`,
	NestingTooDeep:           "nesting too deep",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Kind     ErrorKind // the kind of error
	Offset   int       // byte offset of the error in the input, 0-based
	Location LineCol   // line and column of the error

	err error // the underlying cause, if any
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.err != nil {
		return fmt.Sprintf("at %s: %s: %v", s.Location, s.Kind, s.err)
	}
	return fmt.Sprintf("at %s: %s", s.Location, s.Kind)
}

// Unwrap supports error wrapping. The result includes the kind of s, so that
// errors.Is(err, MissColon) reports whether err is a MissColon syntax error.
func (s *SyntaxError) Unwrap() []error {
	if s.err != nil {
		return []error{s.Kind, s.err}
	}
	return []error{s.Kind}
}

// KindOf reports the ErrorKind of err, if err is or wraps a *SyntaxError.
// Otherwise it returns 0.
func KindOf(err error) ErrorKind {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return 0
}

var (
	// ErrTypeMismatch is reported by an accessor applied to a value of the
	// wrong type. The concrete error has type *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrIndexRange is reported by an accessor given an out-of-range index.
	ErrIndexRange = errors.New("index out of range")
)

// TypeError is the concrete type of errors reported when an accessor is
// applied to a value of the wrong type.
type TypeError struct {
	Op  string // the name of the accessor, e.g., "Number"
	Got Type   // the actual type of the value
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("%s: %v (value is %v)", t.Op, ErrTypeMismatch, t.Got)
}

// Unwrap supports error wrapping.
func (t *TypeError) Unwrap() error { return ErrTypeMismatch }

func indexError(what string, i, n int) error {
	return fmt.Errorf("%s %w: %d (n=%d)", what, ErrIndexRange, i, n)
}
