// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the decoding of Unicode escapes in JSON strings, and
// the quoting of strings for output.
package escape

import (
	"errors"

	"go4.org/mem"
)

var (
	// ErrHex is reported when a Unicode escape does not have four hex digits.
	ErrHex = errors.New("invalid hex digits in Unicode escape")

	// ErrSurrogate is reported for an unpaired or misordered UTF-16 surrogate.
	ErrSurrogate = errors.New("invalid Unicode surrogate")
)

// Surrogate code unit ranges, inclusive.
const (
	highMin = 0xD800
	highMax = 0xDBFF
	lowMin  = 0xDC00
	lowMax  = 0xDFFF
)

// DecodeU decodes the digits of a "\u" escape at the front of src, which must
// begin immediately after the "\u". If the escape denotes a high surrogate, it
// must be immediately followed by a second "\u" escape denoting a low
// surrogate, and the pair is combined into a single code point.
//
// DecodeU returns the decoded code point and the number of bytes of src that
// it consumed (4 for a single escape, 10 for a surrogate pair). It reports
// ErrHex or ErrSurrogate if the input is malformed.
func DecodeU(src mem.RO) (rune, int, error) {
	u, ok := Hex4(src)
	if !ok {
		return 0, 0, ErrHex
	}
	if u >= lowMin && u <= lowMax {
		return 0, 0, ErrSurrogate
	} else if u < highMin || u > highMax {
		return rune(u), 4, nil
	}

	rest := src.SliceFrom(4)
	if rest.Len() < 2 || rest.At(0) != '\\' || rest.At(1) != 'u' {
		return 0, 0, ErrSurrogate
	}
	lo, ok := Hex4(rest.SliceFrom(2))
	if !ok {
		return 0, 0, ErrHex
	} else if lo < lowMin || lo > lowMax {
		return 0, 0, ErrSurrogate
	}
	return (rune(u-highMin)<<10 | rune(lo-lowMin)) + 0x10000, 10, nil
}

// Hex4 parses exactly four hexadecimal digits (in either case) from the front
// of src. It reports false if fewer than four bytes are available or any of
// them is not a hex digit.
func Hex4(src mem.RO) (uint16, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v uint16
	for i := range 4 {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v |= uint16(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v |= uint16(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v |= uint16(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}

// EncodeUTF8 writes the UTF-8 encoding of code point u into buf and returns
// the number of bytes written, from 1 to 4. The caller must ensure buf has
// room for 4 bytes. Unlike utf8.EncodeRune, EncodeUTF8 does not replace
// surrogate code points; the caller is responsible for rejecting them.
// It panics if u is outside the range of Unicode.
func EncodeUTF8(buf []byte, u rune) int {
	switch {
	case u < 0:
		break
	case u <= 0x7F:
		buf[0] = byte(u)
		return 1
	case u <= 0x7FF:
		buf[0] = 0xC0 | byte(u>>6)
		buf[1] = 0x80 | byte(u&0x3F)
		return 2
	case u <= 0xFFFF:
		buf[0] = 0xE0 | byte(u>>12)
		buf[1] = 0x80 | byte((u>>6)&0x3F)
		buf[2] = 0x80 | byte(u&0x3F)
		return 3
	case u <= 0x10FFFF:
		buf[0] = 0xF0 | byte(u>>18)
		buf[1] = 0x80 | byte((u>>12)&0x3F)
		buf[2] = 0x80 | byte((u>>6)&0x3F)
		buf[3] = 0x80 | byte(u&0x3F)
		return 4
	}
	panic("escape: code point out of range")
}
