// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package tree

import "errors"

// ErrBuilderDone is the panic value raised by a builder method called after
// Build has frozen the builder's contents.
var ErrBuilderDone = errors.New("builder already built")

// An ObjectBuilder accumulates key-value members for one Object. Builders
// are single-use: after Build, any further method call panics with
// ErrBuilderDone. A builder is not safe for concurrent use.
type ObjectBuilder struct {
	ms   []Member
	pos  map[string]int
	done bool
}

// NewObjectBuilder constructs an empty ObjectBuilder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{pos: make(map[string]int)}
}

// Add appends a member with the given key and value, and returns b to permit
// chaining. If the key was already added, the new value replaces the old one
// in the earlier member's position: last write wins, first position kept.
// Add panics if v is nil.
func (b *ObjectBuilder) Add(key string, v Value) *ObjectBuilder {
	b.check()
	if v == nil {
		panic("nil value added to object")
	}
	if i, ok := b.pos[key]; ok {
		b.ms[i].Value = v
	} else {
		b.pos[key] = len(b.ms)
		b.ms = append(b.ms, Member{Key: key, Value: v})
	}
	return b
}

// AddString adds a string member.
func (b *ObjectBuilder) AddString(key, v string) *ObjectBuilder { return b.Add(key, String(v)) }

// AddInt adds an integer number member.
func (b *ObjectBuilder) AddInt(key string, v int64) *ObjectBuilder { return b.Add(key, Int(v)) }

// AddFloat adds a floating-point number member.
func (b *ObjectBuilder) AddFloat(key string, v float64) *ObjectBuilder { return b.Add(key, Float(v)) }

// AddBool adds a Boolean member.
func (b *ObjectBuilder) AddBool(key string, v bool) *ObjectBuilder { return b.Add(key, Bool(v)) }

// AddNull adds a null member.
func (b *ObjectBuilder) AddNull(key string) *ObjectBuilder { return b.Add(key, Null) }

// Len reports the number of members added so far.
func (b *ObjectBuilder) Len() int { b.check(); return len(b.ms) }

// Build freezes the accumulated members into an immutable Object. The
// builder must not be used afterward.
func (b *ObjectBuilder) Build() Object {
	b.check()
	b.done = true
	return Object{ms: b.ms, pos: b.pos}
}

func (b *ObjectBuilder) check() {
	if b.done {
		panic(ErrBuilderDone)
	}
}

// An ArrayBuilder accumulates elements for one Array. Builders are
// single-use: after Build, any further method call panics with
// ErrBuilderDone. A builder is not safe for concurrent use.
type ArrayBuilder struct {
	vs   []Value
	done bool
}

// NewArrayBuilder constructs an empty ArrayBuilder.
func NewArrayBuilder() *ArrayBuilder { return &ArrayBuilder{} }

// Add appends v to the array, and returns b to permit chaining. Add panics
// if v is nil.
func (b *ArrayBuilder) Add(v Value) *ArrayBuilder {
	b.check()
	if v == nil {
		panic("nil value added to array")
	}
	b.vs = append(b.vs, v)
	return b
}

// AddString appends a string element.
func (b *ArrayBuilder) AddString(v string) *ArrayBuilder { return b.Add(String(v)) }

// AddInt appends an integer number element.
func (b *ArrayBuilder) AddInt(v int64) *ArrayBuilder { return b.Add(Int(v)) }

// AddFloat appends a floating-point number element.
func (b *ArrayBuilder) AddFloat(v float64) *ArrayBuilder { return b.Add(Float(v)) }

// AddBool appends a Boolean element.
func (b *ArrayBuilder) AddBool(v bool) *ArrayBuilder { return b.Add(Bool(v)) }

// AddNull appends a null element.
func (b *ArrayBuilder) AddNull() *ArrayBuilder { return b.Add(Null) }

// Len reports the number of elements added so far.
func (b *ArrayBuilder) Len() int { b.check(); return len(b.vs) }

// Build freezes the accumulated elements into an immutable Array. The
// builder must not be used afterward.
func (b *ArrayBuilder) Build() Array {
	b.check()
	b.done = true
	return Array{vs: b.vs}
}

func (b *ArrayBuilder) check() {
	if b.done {
		panic(ErrBuilderDone)
	}
}
