// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }

// Unquote decodes a JSON string value. The input must consist of exactly one
// quoted string with no surrounding whitespace. Double quotation marks are
// removed, and escape sequences are replaced with their unescaped
// equivalents. Unquote reports an error of concrete type *SyntaxError if the
// input is not a valid JSON string.
func Unquote(src []byte) ([]byte, error) {
	p := newParser(mem.B(src), nil)
	if c, ok := p.peek(); !ok || c != '"' {
		return nil, p.fail(MissQuotationMark)
	}
	s, err := p.scanString()
	if err != nil {
		return nil, err
	} else if p.pos < len(src) {
		return nil, p.fail(RootNotSingular)
	}
	return s, nil
}

// errNonFinite is reported when encoding a number that has no JSON
// representation.
var errNonFinite = errors.New("non-finite number")

// MarshalJSON satisfies the json.Marshaler interface. It reports an error if
// v contains a NaN or infinite number.
func (v *Value) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

// JSON returns the compact JSON encoding of v. Numbers that have no JSON
// representation (NaN and infinities) are rendered as null.
func (v *Value) JSON() string {
	buf, _ := v.appendJSON(nil, false)
	return string(buf)
}

// String returns the compact JSON encoding of v, as JSON.
func (v *Value) String() string { return v.JSON() }

func (v *Value) appendJSON(buf []byte, strict bool) ([]byte, error) {
	switch v.typ {
	case Null:
		return append(buf, "null"...), nil
	case True:
		return append(buf, "true"...), nil
	case False:
		return append(buf, "false"...), nil
	case Number:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			if strict {
				return nil, fmt.Errorf("encode %v: %w", v.num, errNonFinite)
			}
			return append(buf, "null"...), nil
		}
		return appendNumber(buf, v.num), nil
	case String:
		return escape.AppendQuote(buf, mem.B(v.str)), nil
	case Array:
		buf = append(buf, '[')
		for i := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			buf, err = v.arr[i].appendJSON(buf, strict)
			if err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case Object:
		buf = append(buf, '{')
		for i, m := range v.obj {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(escape.AppendQuote(buf, mem.B(m.Key)), ':')
			var err error
			buf, err = v.obj[i].Value.appendJSON(buf, strict)
			if err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	}
	panic(fmt.Sprintf("jvalue: invalid value type %v", v.typ))
}

// appendNumber appends the shortest decimal representation of f that parses
// back to the same value, using exponent notation for very large and very
// small magnitudes.
func appendNumber(buf []byte, f float64) []byte {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		n := len(buf)
		buf = strconv.AppendFloat(buf, f, 'e', -1, 64)

		// Clean up e-09 to e-9.
		if m := len(buf) - n; m >= 4 && buf[len(buf)-4] == 'e' && buf[len(buf)-3] == '-' && buf[len(buf)-2] == '0' {
			buf[len(buf)-2] = buf[len(buf)-1]
			buf = buf[:len(buf)-1]
		}
		return buf
	}
	return strconv.AppendFloat(buf, f, 'f', -1, 64)
}
