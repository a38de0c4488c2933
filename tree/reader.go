// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
	"io"

	"github.com/jdoc-go/jdoc"
)

// ErrReaderClosed is reported by operations on a Reader whose document has
// already been read or that has been closed.
var ErrReaderClosed = errors.New("reader is closed")

// A Reader assembles the events of a jdoc.Source into a single immutable
// document value. A Reader is single-use: it consumes its source exactly
// once, closes it after producing the document, and rejects any further read
// or close with ErrReaderClosed.
type Reader struct {
	src    jdoc.Source
	all    bool // require the input be exhausted after the root value
	seeded bool // the root's start event is already standing at the cursor
	closed bool
}

// NewReader constructs a Reader for the document produced by src. The whole
// input must consist of exactly one document; content after the root value
// is an error.
func NewReader(src jdoc.Source) *Reader { return &Reader{src: src, all: true} }

// Parse reads a single complete JSON document from r. It is shorthand for
// NewReader(jdoc.NewParser(r)).ReadValue().
func Parse(r io.Reader) (Value, error) {
	return NewReader(jdoc.NewParser(r)).ReadValue()
}

// Read returns the root of the document, which must be an object or an
// array.
func (r *Reader) Read() (Value, error) { return r.read(true) }

// ReadObject returns the root of the document, which must be an object.
func (r *Reader) ReadObject() (Object, error) {
	v, err := r.read(true)
	if err != nil {
		return Object{}, err
	}
	obj, ok := v.(Object)
	if !ok {
		return Object{}, &jdoc.StructError{
			Event:   jdoc.ArrayStart,
			Message: "root value is an array, not an object",
		}
	}
	return obj, nil
}

// ReadArray returns the root of the document, which must be an array.
func (r *Reader) ReadArray() (Array, error) {
	v, err := r.read(true)
	if err != nil {
		return Array{}, err
	}
	arr, ok := v.(Array)
	if !ok {
		return Array{}, &jdoc.StructError{
			Event:   jdoc.ObjectStart,
			Message: "root value is an object, not an array",
		}
	}
	return arr, nil
}

// ReadValue returns the root of the document, which may be a value of any
// kind including a bare scalar.
func (r *Reader) ReadValue() (Value, error) { return r.read(false) }

// Close marks the reader consumed and closes its source. Close fails with
// ErrReaderClosed if the document was already read or the reader was already
// closed.
func (r *Reader) Close() error {
	if r.closed {
		return ErrReaderClosed
	}
	r.closed = true
	return r.src.Close()
}

func (r *Reader) read(structOnly bool) (Value, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}

	evt := r.src.Current()
	if !r.seeded {
		if !r.src.More() {
			return nil, r.structErr(jdoc.Invalid, "no value available")
		}
		var err error
		evt, err = r.src.Next()
		if err != nil {
			return nil, err
		}
	}

	var v Value
	switch evt {
	case jdoc.ObjectStart, jdoc.ArrayStart:
		built, err := r.build(evt)
		if err != nil {
			return nil, err
		}
		v = built
	default:
		if structOnly {
			return nil, r.structErr(evt, "unexpected %v at document root", evt)
		}
		scalar, err := r.scalar(evt)
		if err != nil {
			return nil, err
		}
		v = scalar
	}

	if r.all && r.src.More() {
		return nil, r.structErr(jdoc.Invalid, "expected end of input")
	}
	r.closed = true
	if r.all {
		if err := r.src.Close(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// build assembles the structure whose start event root has just been pulled
// from the source. It runs an explicit frame stack rather than recursing, so
// nesting depth is limited only by available memory.
func (r *Reader) build(root jdoc.Kind) (Value, error) {
	type frame struct {
		ob     *ObjectBuilder // exactly one of ob, ab is set
		ab     *ArrayBuilder
		key    string
		hasKey bool
	}
	newFrame := func(k jdoc.Kind) frame {
		if k == jdoc.ObjectStart {
			return frame{ob: NewObjectBuilder()}
		}
		return frame{ab: NewArrayBuilder()}
	}
	stack := []frame{newFrame(root)}

	// attach adds a completed value to the innermost open structure.
	attach := func(v Value) error {
		f := &stack[len(stack)-1]
		if f.ob != nil {
			if !f.hasKey {
				return r.structErr(jdoc.Invalid, "member value without a key")
			}
			f.ob.Add(f.key, v)
			f.hasKey = false
		} else {
			f.ab.Add(v)
		}
		return nil
	}

	for {
		if !r.src.More() {
			return nil, r.structErr(jdoc.Invalid, "unexpected end of input")
		}
		evt, err := r.src.Next()
		if err != nil {
			return nil, err
		}
		f := &stack[len(stack)-1]
		switch evt {
		case jdoc.KeyName:
			if f.ob == nil {
				return nil, r.structErr(evt, "array members do not have keys")
			}
			f.key, f.hasKey = r.src.Text(), true

		case jdoc.StringValue:
			if err := attach(String(r.src.Text())); err != nil {
				return nil, err
			}
		case jdoc.NumberValue:
			n := Number{text: r.src.Text(), isInt: r.src.IsInt()}
			if err := attach(n); err != nil {
				return nil, err
			}
		case jdoc.TrueValue:
			if err := attach(True); err != nil {
				return nil, err
			}
		case jdoc.FalseValue:
			if err := attach(False); err != nil {
				return nil, err
			}
		case jdoc.NullValue:
			if err := attach(Null); err != nil {
				return nil, err
			}

		case jdoc.ObjectStart, jdoc.ArrayStart:
			if f.ob != nil && !f.hasKey {
				return nil, r.structErr(evt, "member value without a key")
			}
			stack = append(stack, newFrame(evt))

		case jdoc.ObjectEnd:
			if f.ob == nil {
				return nil, r.structErr(evt, `"}" closing an array`)
			}
			v := f.ob.Build()
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return v, nil
			}
			if err := attach(v); err != nil {
				return nil, err
			}

		case jdoc.ArrayEnd:
			if f.ab == nil {
				return nil, r.structErr(evt, `"]" closing an object`)
			}
			v := f.ab.Build()
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return v, nil
			}
			if err := attach(v); err != nil {
				return nil, err
			}

		default:
			return nil, r.structErr(evt, "unexpected %v", evt)
		}
	}
}

// scalar converts the value event standing at the cursor into a Value.
func (r *Reader) scalar(evt jdoc.Kind) (Value, error) {
	switch evt {
	case jdoc.StringValue:
		return String(r.src.Text()), nil
	case jdoc.NumberValue:
		return Number{text: r.src.Text(), isInt: r.src.IsInt()}, nil
	case jdoc.TrueValue:
		return True, nil
	case jdoc.FalseValue:
		return False, nil
	case jdoc.NullValue:
		return Null, nil
	}
	return nil, r.structErr(evt, "unexpected %v at document root", evt)
}

func (r *Reader) structErr(evt jdoc.Kind, msg string, args ...any) error {
	return &jdoc.StructError{
		Event:    evt,
		Location: r.src.Location().First,
		Message:  fmt.Sprintf(msg, args...),
	}
}
