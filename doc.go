// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

// Package jdoc implements a lexical scanner and a pull-based structural
// parser for JSON.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream. Next advances to the next input token and returns nil, or reports
// an error:
//
//	s := jdoc.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates an I/O or lexical error in the input.
//
// # Parsing
//
// The Parser type turns the token stream into a forward-only cursor over
// structural events: object and array boundaries, member keys, and values.
// Each call to Next advances the cursor by one event and enforces the JSON
// grammar; a malformed input is reported as a *SyntaxError with its input
// position.
//
//	p := jdoc.NewParser(input)
//	for p.More() {
//	   evt, err := p.Next()
//	   ...
//	}
//
// Parser implements the Source interface consumed by the tree package,
// which assembles events into immutable document values. A consumer that
// walks events by hand can discard the structure currently being read with
// SkipObject or SkipArray, or materialize it through the tree package
// without disturbing the rest of the stream.
//
// Event kinds map to the grammar as follows:
//
//	JSON type  | Events                    | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | ObjectStart, ObjectEnd    | { ... }
//	array      | ArrayStart, ArrayEnd      | [ ... ]
//	member     | KeyName                   | "key": ...
//	value      | StringValue, NumberValue, | string, number,
//	           | TrueValue, FalseValue,    | true, false,
//	           | NullValue                 | null
//
// String and key events carry their decoded text; number events carry the
// original literal along with accessors for integral and floating values.
package jdoc
