// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

// Package tree defines an immutable document model for JSON values, mutable
// builders that construct them, and a reader that assembles values from the
// structural events of a jdoc.Source.
//
// A Value frozen by a builder's Build method is never modified afterward;
// values may be shared freely across goroutines and across documents.
package tree

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/jdoc-go/jdoc"
)

// A Value is an immutable JSON datum of one of the seven kinds: null, true,
// false, string, number, array, or object. The concrete types of a Value are
// all defined in this package.
type Value interface {
	// JSON returns the value rendered as compact JSON text.
	JSON() string

	fmt.Stringer

	isValue()
}

// Null is the JSON null value.
var Null Value = nullType{}

type nullType struct{}

func (nullType) JSON() string   { return "null" }
func (nullType) String() string { return "Null" }
func (nullType) isValue()       {}

// A Bool is a JSON Boolean constant.
type Bool bool

// The two Boolean values.
const (
	True  Bool = true
	False Bool = false
)

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return fmt.Sprintf("Bool(%v)", bool(b)) }
func (Bool) isValue()         {}

// A String is a JSON string value. It holds the decoded text; JSON reports
// the quoted and escaped form.
type String string

func (s String) JSON() string   { return jdoc.Quote(string(s)) }
func (s String) String() string { return fmt.Sprintf("String(%q)", string(s)) }
func (String) isValue()         {}

// A Number is a JSON number value. A Number remembers the literal text it
// was constructed from and whether that literal was integral, so that
// rendering a parsed document reproduces the original formatting.
type Number struct {
	text  string
	isInt bool
}

// Int constructs a Number from an integer value.
func Int(v int64) Number {
	return Number{text: strconv.FormatInt(v, 10), isInt: true}
}

// Float constructs a Number from a floating-point value. The literal always
// carries a fraction or exponent marker, so a Float number renders
// distinguishably from an integer even when its value is integral.
func Float(v float64) Number {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return Number{text: s}
}

// IsInt reports whether n was written as an integer literal, with no
// fraction or exponent.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns n as an integer, truncating any fractional part.
func (n Number) Int64() int64 {
	v, err := strconv.ParseInt(n.text, 10, 64)
	if err != nil {
		return int64(n.Float64())
	}
	return v
}

// Float64 returns n as a floating-point value.
func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		panic(err) // unreachable: the literal is validated at construction
	}
	return v
}

func (n Number) JSON() string   { return n.text }
func (n Number) String() string { return fmt.Sprintf("Number(%s)", n.text) }
func (Number) isValue()         {}

// An Array is an immutable ordered sequence of values.
type Array struct {
	vs []Value
}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a.vs) }

// At returns the element at offset i. It panics if i is out of range.
func (a Array) At(i int) Value { return a.vs[i] }

// All ranges over the elements of a in order.
func (a Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.vs {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (a Array) JSON() string {
	if len(a.vs) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a.vs[0].JSON())
	for _, v := range a.vs[1:] {
		sb.WriteByte(',')
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.vs)) }
func (Array) isValue()         {}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Object is an immutable ordered collection of key-value members. Keys
// are unique; insertion order is preserved.
type Object struct {
	ms  []Member
	pos map[string]int
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o.ms) }

// Find returns the value of the member of o with the given key, and reports
// whether such a member exists.
func (o Object) Find(key string) (Value, bool) {
	i, ok := o.pos[key]
	if !ok {
		return nil, false
	}
	return o.ms[i].Value, true
}

// At returns the member at offset i in document order. It panics if i is out
// of range.
func (o Object) At(i int) Member { return o.ms[i] }

// All ranges over the members of o in document order.
func (o Object) All() iter.Seq2[int, Member] {
	return func(yield func(int, Member) bool) {
		for i, m := range o.ms {
			if !yield(i, m) {
				return
			}
		}
	}
}

func (o Object) JSON() string {
	if len(o.ms) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.ms {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jdoc.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.ms)) }
func (Object) isValue()         {}

// Equal reports whether two values are structurally equal. Numbers compare
// equal only if they share both representation kind and literal text;
// objects compare equal only if they hold equal members in the same order.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case nullType:
		_, ok := b.(nullType)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case Number:
		u, ok := b.(Number)
		return ok && t == u
	case Array:
		u, ok := b.(Array)
		if !ok || len(t.vs) != len(u.vs) {
			return false
		}
		for i, v := range t.vs {
			if !Equal(v, u.vs[i]) {
				return false
			}
		}
		return true
	case Object:
		u, ok := b.(Object)
		if !ok || len(t.ms) != len(u.ms) {
			return false
		}
		for i, m := range t.ms {
			if m.Key != u.ms[i].Key || !Equal(m.Value, u.ms[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
