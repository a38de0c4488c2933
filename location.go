// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package jdoc

import "fmt"

// A Span is a contiguous range of bytes in the source input.
type Span struct {
	Pos int // start offset, 0-based
	End int // end offset, 0-based (exclusive)
}

// A LineCol identifies a point in the source input by line and column.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset within the line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location is the full position of a token or event in the source input,
// comprising its byte span and its line/column endpoints.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string { return loc.First.String() }
