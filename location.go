package jvalue

import (
	"fmt"

	"go4.org/mem"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// locate returns the line and column of the given byte offset in src.
// Only "\n" ends a line.
func locate(src mem.RO, offset int) LineCol {
	offset = min(offset, src.Len())
	lc := LineCol{Line: 1}
	for {
		i := mem.IndexByte(src.SliceTo(offset), '\n')
		if i < 0 {
			lc.Column = offset
			return lc
		}
		lc.Line++
		src = src.SliceFrom(i + 1)
		offset -= i + 1
	}
}
