// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"io"
	"slices"

	"github.com/creachadair/jvalue/internal/scratch"
	"go4.org/mem"
)

// Options control the behavior of the parser. A nil *Options is ready for
// use and provides default settings.
type Options struct {
	// If positive, the maximum nesting depth of arrays and objects.
	// Deeper input is rejected with NestingTooDeep.
	// If zero or negative, nesting is not limited.
	MaxDepth int

	// The initial capacity, in elements, of the scratch buffers used to
	// stage strings, array elements, and object members. If zero or
	// negative, scratch.DefaultSize is used.
	ScratchSize int
}

func (o *Options) maxDepth() int {
	if o == nil {
		return 0
	}
	return o.MaxDepth
}

func (o *Options) scratchSize() int {
	if o == nil {
		return 0
	}
	return o.ScratchSize
}

// Parse parses data as a single JSON value, surrounded by optional
// whitespace. On success, the caller owns the resulting value. On failure,
// Parse returns nil and an error of concrete type *SyntaxError.
func (o *Options) Parse(data []byte) (*Value, error) { return newParser(mem.B(data), o).parse() }

// ParseString parses s as a single JSON value. It is otherwise identical to
// Parse.
func (o *Options) ParseString(s string) (*Value, error) { return newParser(mem.S(s), o).parse() }

// Parse parses data as a single JSON value with default options.
// On failure, it returns nil and an error of concrete type *SyntaxError.
func Parse(data []byte) (*Value, error) { return (*Options)(nil).Parse(data) }

// ParseString parses s as a single JSON value with default options.
func ParseString(s string) (*Value, error) { return (*Options)(nil).ParseString(s) }

// Read reads all the data from r and parses it as a single JSON value with
// default options.
func Read(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// MustParse parses s as a single JSON value, and panics if parsing fails.
// It is intended for use in tests and program initialization.
func MustParse(s string) *Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jvalue: parse failed: %v", err))
	}
	return v
}

// Valid reports whether data is a valid JSON document.
func Valid(data []byte) bool {
	v, err := Parse(data)
	if err != nil {
		return false
	}
	v.Free()
	return true
}

// UnmarshalJSON satisfies the json.Unmarshaler interface. It replaces the
// contents of v with the value parsed from data. If parsing fails, v is left
// null.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.Free()
	nv, err := Parse(data)
	if err != nil {
		return err
	}
	*v = *nv
	return nil
}

// A parser holds the state of a single top-level parse.
type parser struct {
	src      mem.RO
	pos      int // offset of the next unread byte of src
	depth    int // current array/object nesting depth
	maxDepth int // if positive, the maximum nesting depth

	str  *scratch.Buffer[byte]   // decoded string bytes
	vals *scratch.Buffer[Value]  // staged array elements
	mems *scratch.Buffer[Member] // staged object members
}

func newParser(src mem.RO, opts *Options) *parser {
	size := opts.scratchSize()
	return &parser{
		src:      src,
		maxDepth: opts.maxDepth(),
		str:      scratch.New[byte](size),
		vals:     scratch.New[Value](size),
		mems:     scratch.New[Member](size),
	}
}

// parse parses a complete document: a single value surrounded by optional
// whitespace. If anything other than whitespace follows the value, the value
// is discarded.
func (p *parser) parse() (*Value, error) {
	p.skipSpace()
	v := new(Value)
	if err := p.parseValue(v); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < p.src.Len() {
		v.Free()
		return nil, p.fail(RootNotSingular)
	}
	return v, nil
}

// parseValue parses a value at the current position into v, which must be
// null. If parseValue reports an error, v remains null.
func (p *parser) parseValue(v *Value) error {
	c, ok := p.peek()
	if !ok {
		return p.fail(ExpectValue)
	}
	switch c {
	case 'n':
		return p.scanLiteral(v, litNull, Null)
	case 't':
		return p.scanLiteral(v, litTrue, True)
	case 'f':
		return p.scanLiteral(v, litFalse, False)
	case '"':
		s, err := p.scanString()
		if err != nil {
			return err
		}
		v.typ, v.str = String, s
		return nil
	case '[':
		return p.parseArray(v)
	case '{':
		return p.parseObject(v)
	}
	return p.scanNumber(v)
}

func (p *parser) parseArray(v *Value) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	p.pos++ // "["
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		v.typ = Array
		return nil
	}

	mark := p.vals.Len()
	for {
		var elt Value
		if err := p.parseValue(&elt); err != nil {
			return p.dropValues(mark, err)
		}
		p.vals.Push(1)[0] = elt

		p.skipSpace()
		c, _ := p.peek()
		switch c {
		case ',':
			p.pos++
			p.skipSpace()
		case ']':
			p.pos++
			staged := p.vals.Truncate(mark)
			v.typ, v.arr = Array, slices.Clone(staged)
			clear(staged)
			return nil
		default:
			return p.dropValues(mark, p.fail(MissCommaOrSquareBracket))
		}
	}
}

func (p *parser) parseObject(v *Value) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	p.pos++ // "{"
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		v.typ = Object
		return nil
	}

	mark := p.mems.Len()
	for {
		if c, ok := p.peek(); !ok || c != '"' {
			return p.dropMembers(mark, p.fail(MissKey))
		}
		key, err := p.scanString()
		if err != nil {
			return p.dropMembers(mark, missKey(err))
		}

		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return p.dropMembers(mark, p.fail(MissColon))
		}
		p.pos++
		p.skipSpace()

		var val Value
		if err := p.parseValue(&val); err != nil {
			return p.dropMembers(mark, err)
		}
		p.mems.Push(1)[0] = Member{Key: key, Value: val}

		p.skipSpace()
		c, _ := p.peek()
		switch c {
		case ',':
			p.pos++
			p.skipSpace()
		case '}':
			p.pos++
			staged := p.mems.Truncate(mark)
			v.typ, v.obj = Object, slices.Clone(staged)
			clear(staged)
			return nil
		default:
			return p.dropMembers(mark, p.fail(MissCommaOrCurlyBracket))
		}
	}
}

// dropValues discards the array elements staged above mark, and returns err.
func (p *parser) dropValues(mark int, err error) error {
	staged := p.vals.Truncate(mark)
	for i := range staged {
		staged[i].Free()
	}
	return err
}

// dropMembers discards the object members staged above mark, and returns err.
func (p *parser) dropMembers(mark int, err error) error {
	staged := p.mems.Truncate(mark)
	for i := range staged {
		staged[i].Value.Free()
		staged[i].Key = nil
	}
	return err
}

func (p *parser) enter() error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return p.fail(NestingTooDeep)
	}
	p.depth++
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) fail(kind ErrorKind) error { return p.failAt(p.pos, kind) }

func (p *parser) failAt(pos int, kind ErrorKind) error {
	return &SyntaxError{Kind: kind, Offset: pos, Location: locate(p.src, pos)}
}

// missKey converts an error from scanning an object key into a MissKey error
// at the same location, wrapping the kind of the original.
func missKey(err error) error {
	serr := err.(*SyntaxError)
	return &SyntaxError{
		Kind:     MissKey,
		Offset:   serr.Offset,
		Location: serr.Location,
		err:      serr.Kind,
	}
}
