// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package tree_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/jdoc-go/jdoc"
	"github.com/jdoc-go/jdoc/tree"
)

func TestReader(t *testing.T) {
	t.Run("Object", func(t *testing.T) {
		r := tree.NewReader(jdoc.NewParser(strings.NewReader(`{"a": 1, "b": [true]}`)))
		obj, err := r.ReadObject()
		if err != nil {
			t.Fatalf("ReadObject failed: %v", err)
		}
		if got, want := obj.JSON(), `{"a":1,"b":[true]}`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
	})
	t.Run("Array", func(t *testing.T) {
		r := tree.NewReader(jdoc.NewParser(strings.NewReader(`[null, {"x": 2.5}]`)))
		arr, err := r.ReadArray()
		if err != nil {
			t.Fatalf("ReadArray failed: %v", err)
		}
		if got, want := arr.JSON(), `[null,{"x":2.5}]`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
	})
	t.Run("Scalar", func(t *testing.T) {
		r := tree.NewReader(jdoc.NewParser(strings.NewReader(`  "lonesome"  `)))
		v, err := r.ReadValue()
		if err != nil {
			t.Fatalf("ReadValue failed: %v", err)
		}
		if got, want := v.JSON(), `"lonesome"`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
	})
	t.Run("DuplicateKeys", func(t *testing.T) {
		// The value of the last occurrence wins; the position of the first
		// occurrence is kept.
		v, err := tree.Parse(strings.NewReader(`{"a": 1, "b": 2, "a": 3}`))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got, want := v.JSON(), `{"a":3,"b":2}`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
	})
	t.Run("DeepNesting", func(t *testing.T) {
		const depth = 100000
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		v, err := tree.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		n := 0
		for {
			arr, ok := v.(tree.Array)
			if !ok || arr.Len() == 0 {
				break
			}
			v = arr.At(0)
			n++
		}
		if n != depth-1 {
			t.Errorf("Nesting depth: got %d, want %d", n, depth-1)
		}
	})
}

func TestReaderErrors(t *testing.T) {
	t.Run("WrongRootKind", func(t *testing.T) {
		r := tree.NewReader(jdoc.NewParser(strings.NewReader(`[1, 2]`)))
		_, err := r.ReadObject()
		var serr *jdoc.StructError
		if !errors.As(err, &serr) {
			t.Fatalf("ReadObject: got %v, want *StructError", err)
		}
	})
	t.Run("ScalarRoot", func(t *testing.T) {
		r := tree.NewReader(jdoc.NewParser(strings.NewReader(`25`)))
		_, err := r.Read()
		var serr *jdoc.StructError
		if !errors.As(err, &serr) {
			t.Fatalf("Read: got %v, want *StructError", err)
		}
	})
	t.Run("EmptyInput", func(t *testing.T) {
		if _, err := tree.Parse(strings.NewReader("   ")); err == nil {
			t.Error("Parse of blank input: got nil, want error")
		}
	})
	t.Run("TrailingContent", func(t *testing.T) {
		if _, err := tree.Parse(strings.NewReader(`{"a": 1} []`)); err == nil {
			t.Error("Parse with trailing content: got nil, want error")
		}
	})
	t.Run("Malformed", func(t *testing.T) {
		_, err := tree.Parse(strings.NewReader(`{"a": }`))
		var serr *jdoc.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse: got %v, want *SyntaxError", err)
		}
	})
}

func TestReaderSingleUse(t *testing.T) {
	r := tree.NewReader(jdoc.NewParser(strings.NewReader(`{"once": true}`)))
	if _, err := r.ReadObject(); err != nil {
		t.Fatalf("ReadObject failed: %v", err)
	}
	if _, err := r.ReadObject(); !errors.Is(err, tree.ErrReaderClosed) {
		t.Errorf("second ReadObject: got %v, want ErrReaderClosed", err)
	}
	if _, err := r.ReadValue(); !errors.Is(err, tree.ErrReaderClosed) {
		t.Errorf("ReadValue after read: got %v, want ErrReaderClosed", err)
	}
	if err := r.Close(); !errors.Is(err, tree.ErrReaderClosed) {
		t.Errorf("Close after read: got %v, want ErrReaderClosed", err)
	}
}

func TestReaderClose(t *testing.T) {
	src := &scriptSource{events: []scriptEvent{{kind: jdoc.ObjectStart}, {kind: jdoc.ObjectEnd}}}
	r := tree.NewReader(src)
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !src.closed {
		t.Error("Close did not close the underlying source")
	}
	if _, err := r.Read(); !errors.Is(err, tree.ErrReaderClosed) {
		t.Errorf("Read after Close: got %v, want ErrReaderClosed", err)
	}
	if err := r.Close(); !errors.Is(err, tree.ErrReaderClosed) {
		t.Errorf("second Close: got %v, want ErrReaderClosed", err)
	}
}

func TestReaderClosesSource(t *testing.T) {
	src := &scriptSource{events: []scriptEvent{{kind: jdoc.ArrayStart}, {kind: jdoc.ArrayEnd}}}
	if _, err := tree.NewReader(src).ReadArray(); err != nil {
		t.Fatalf("ReadArray failed: %v", err)
	}
	if !src.closed {
		t.Error("reading the document did not close the source")
	}
}

func TestReaderBadEventSequences(t *testing.T) {
	tests := []struct {
		name   string
		events []scriptEvent
	}{
		{"KeyInArray", []scriptEvent{
			{kind: jdoc.ArrayStart}, {kind: jdoc.KeyName, text: "k"},
		}},
		{"ValueWithoutKey", []scriptEvent{
			{kind: jdoc.ObjectStart}, {kind: jdoc.StringValue, text: "v"},
		}},
		{"ObjectEndClosesArray", []scriptEvent{
			{kind: jdoc.ArrayStart}, {kind: jdoc.ObjectEnd},
		}},
		{"ArrayEndClosesObject", []scriptEvent{
			{kind: jdoc.ObjectStart}, {kind: jdoc.ArrayEnd},
		}},
		{"TruncatedObject", []scriptEvent{
			{kind: jdoc.ObjectStart}, {kind: jdoc.KeyName, text: "k"}, {kind: jdoc.NullValue},
		}},
		{"StructWithoutKey", []scriptEvent{
			{kind: jdoc.ObjectStart}, {kind: jdoc.ArrayStart},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := tree.NewReader(&scriptSource{events: test.events})
			_, err := r.Read()
			var serr *jdoc.StructError
			if !errors.As(err, &serr) {
				t.Errorf("Read: got %v, want *StructError", err)
			}
		})
	}
}

// A scriptSource replays a fixed sequence of events, permitting event
// sequences a real parser would never produce.
type scriptEvent struct {
	kind  jdoc.Kind
	text  string
	isInt bool
}

type scriptSource struct {
	events []scriptEvent
	pos    int
	closed bool
}

func (s *scriptSource) More() bool { return s.pos < len(s.events) }

func (s *scriptSource) Next() (jdoc.Kind, error) {
	if s.pos >= len(s.events) {
		return jdoc.Invalid, errors.New("no more events")
	}
	s.pos++
	return s.events[s.pos-1].kind, nil
}

func (s *scriptSource) Current() jdoc.Kind {
	if s.pos == 0 {
		return jdoc.Invalid
	}
	return s.events[s.pos-1].kind
}

func (s *scriptSource) Text() string { return s.events[s.pos-1].text }

func (s *scriptSource) Int64() int64 {
	v, _ := strconv.ParseInt(s.Text(), 10, 64)
	return v
}

func (s *scriptSource) Float64() float64 {
	v, _ := strconv.ParseFloat(s.Text(), 64)
	return v
}

func (s *scriptSource) IsInt() bool { return s.events[s.pos-1].isInt }

func (s *scriptSource) Location() jdoc.Location { return jdoc.Location{} }

func (s *scriptSource) Close() error { s.closed = true; return nil }
