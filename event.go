// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package jdoc

import "fmt"

// A Kind identifies the type of a structural event reported by a Source.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid event
	ObjectStart             // start of an object: "{"
	ObjectEnd               // end of an object: "}"
	ArrayStart              // start of an array: "["
	ArrayEnd                // end of an array: "]"
	KeyName                 // an object member key
	StringValue             // a string value
	NumberValue             // a number value
	TrueValue               // the constant true
	FalseValue              // the constant false
	NullValue               // the constant null
)

var kindStr = [...]string{
	Invalid:     "invalid event",
	ObjectStart: "object start",
	ObjectEnd:   "object end",
	ArrayStart:  "array start",
	ArrayEnd:    "array end",
	KeyName:     "key name",
	StringValue: "string value",
	NumberValue: "number value",
	TrueValue:   "true",
	FalseValue:  "false",
	NullValue:   "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Source is an exclusively-owned, forward-only cursor over the structural
// events of a single JSON input. At most one consumer may pull from a Source
// at a time.
//
// The value accessors (Text, Int64, Float64, IsInt) are valid only while the
// cursor stands on an event of a compatible kind; calling them on any other
// event panics. Text reports the decoded text of a key or string value, and
// the original literal of a number value.
type Source interface {
	// More reports whether another event is available from the input.
	More() bool

	// Next advances the cursor and returns the next event. At the end of the
	// input it returns io.EOF; a malformed input is reported as *SyntaxError.
	Next() (Kind, error)

	// Current returns the event most recently returned by Next, or Invalid if
	// Next has not yet been called.
	Current() Kind

	// Text returns the decoded text of the current key or string event, or
	// the literal text of the current number event.
	Text() string

	// Int64 returns the value of the current integral number event.
	Int64() int64

	// Float64 returns the value of the current number event.
	Float64() float64

	// IsInt reports whether the current number event was written as an
	// integer literal, with no fraction or exponent.
	IsInt() bool

	// Location returns the position of the current event in the input.
	Location() Location

	// Close releases the source. Close is idempotent; events must not be
	// pulled after the first call.
	Close() error
}

// A StructError reports a structurally invalid event sequence, such as an
// array terminator closing an object or a member key inside an array.
type StructError struct {
	Event    Kind    // the offending event
	Location LineCol // its position in the input
	Message  string
}

// Error satisfies the error interface.
func (e *StructError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// A StateError reports an operation invoked while its cursor or receiver was
// not in a compatible state, for example materializing an object while the
// cursor stands on an array start.
type StateError struct {
	Op    string // the operation attempted
	Event Kind   // the event the cursor stood on
}

// Error satisfies the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Event, e.Op)
}
