// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

var (
	litNull  = mem.S("null")
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
)

// unescape maps the byte following a backslash to its decoded value, for the
// single-character escapes. Zero means the escape is not valid.
var unescape = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// peek returns the byte at the current position, and reports false if the
// input is exhausted.
func (p *parser) peek() (byte, bool) {
	if p.pos >= p.src.Len() {
		return 0, false
	}
	return p.src.At(p.pos), true
}

// skipSpace advances past any whitespace at the current position.
func (p *parser) skipSpace() {
	for p.pos < p.src.Len() && isSpace(p.src.At(p.pos)) {
		p.pos++
	}
}

// scanLiteral matches the exact spelling lit at the current position and
// sets v to t. Anything else, including truncated input, is InvalidValue.
func (p *parser) scanLiteral(v *Value, lit mem.RO, t Type) error {
	if !mem.HasPrefix(p.src.SliceFrom(p.pos), lit) {
		return p.fail(InvalidValue)
	}
	p.pos += lit.Len()
	v.typ = t
	return nil
}

// scanNumber validates the number at the current position and converts it.
// On error the position is not advanced, so the error reports the start of
// the number.
func (p *parser) scanNumber(v *Value) error {
	rest := p.src.SliceFrom(p.pos)
	n := numberLen(rest)
	if n < 0 {
		return p.fail(InvalidValue)
	}
	f, err := mem.ParseFloat(rest.SliceTo(n), 64)
	if math.IsInf(f, 0) {
		return p.fail(NumberTooBig)
	} else if err != nil && !errors.Is(err, strconv.ErrRange) {
		return p.fail(InvalidValue)
	}
	p.pos += n
	v.typ, v.num = Number, f
	return nil
}

// numberLen returns the length of the longest prefix of s that matches the
// JSON number grammar, or -1 if no prefix does. A number ends at the first
// byte that cannot continue it; in particular "0123" yields 1.
func numberLen(s mem.RO) int {
	i, n := 0, s.Len()
	if i < n && s.At(i) == '-' {
		i++
	}
	switch {
	case i < n && s.At(i) == '0':
		i++
	case i < n && '1' <= s.At(i) && s.At(i) <= '9':
		i = skipDigits(s, i+1)
	default:
		return -1
	}

	if i < n && s.At(i) == '.' {
		j := skipDigits(s, i+1)
		if j == i+1 {
			return -1 // no digits after the decimal point
		}
		i = j
	}

	if i < n && (s.At(i) == 'e' || s.At(i) == 'E') {
		i++
		if i < n && (s.At(i) == '+' || s.At(i) == '-') {
			i++
		}
		j := skipDigits(s, i)
		if j == i {
			return -1 // no exponent digits
		}
		i = j
	}
	return i
}

func skipDigits(s mem.RO, i int) int {
	for i < s.Len() && isDigit(s.At(i)) {
		i++
	}
	return i
}

// scanString decodes the string whose opening quotation mark is at the
// current position, and returns its contents in a freshly-allocated slice of
// exactly the decoded length. Decoded bytes are staged on the byte buffer,
// which is restored to its original height whether or not scanning succeeds.
func (p *parser) scanString() ([]byte, error) {
	mark := p.str.Len()
	p.pos++ // opening quote
	for {
		c, ok := p.peek()
		switch {
		case !ok:
			p.str.Truncate(mark)
			return nil, p.fail(MissQuotationMark)

		case c == '"':
			p.pos++
			staged := p.str.Truncate(mark)
			return append(make([]byte, 0, len(staged)), staged...), nil

		case c == '\\':
			if err := p.scanEscape(); err != nil {
				p.str.Truncate(mark)
				return nil, err
			}

		case c < ' ':
			p.str.Truncate(mark)
			return nil, p.fail(InvalidStringChar)

		default:
			// Copy a run of bytes that need no decoding.
			run := p.src.SliceFrom(p.pos)
			n := plainLen(run)
			run.SliceTo(n).Copy(p.str.Push(n))
			p.pos += n
		}
	}
}

// scanEscape decodes the escape sequence whose backslash is at the current
// position, and pushes the decoded bytes.
func (p *parser) scanEscape() error {
	start := p.pos
	p.pos++ // backslash
	c, ok := p.peek()
	if !ok {
		return p.failAt(start, InvalidStringEscape)
	} else if c != 'u' {
		b := unescape[c]
		if b == 0 {
			return p.failAt(start, InvalidStringEscape)
		}
		p.str.Push(1)[0] = b
		p.pos++
		return nil
	}

	r, n, err := escape.DecodeU(p.src.SliceFrom(p.pos + 1))
	if errors.Is(err, escape.ErrSurrogate) {
		return p.failAt(start, InvalidUnicodeSurrogate)
	} else if err != nil {
		return p.failAt(start, InvalidUnicodeHex)
	}
	var buf [4]byte
	nb := escape.EncodeUTF8(buf[:], r)
	copy(p.str.Push(nb), buf[:nb])
	p.pos += 1 + n
	return nil
}

// plainLen returns the length of the longest prefix of s containing no
// quotation marks, backslashes, or control characters.
func plainLen(s mem.RO) int {
	for i := range s.Len() {
		if c := s.At(i); c == '"' || c == '\\' || c < ' ' {
			return i
		}
	}
	return s.Len()
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
