// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package tree_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jdoc-go/jdoc"
	"github.com/jdoc-go/jdoc/tree"
)

// advance pulls one event from p and requires it have kind want.
func advance(t *testing.T, p *jdoc.Parser, want jdoc.Kind) {
	t.Helper()
	k, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if k != want {
		t.Fatalf("Next: got %v, want %v", k, want)
	}
}

// advanceTo pulls events from p until it returns an event of kind want,
// failing the test at end of input.
func advanceTo(t *testing.T, p *jdoc.Parser, want jdoc.Kind) {
	t.Helper()
	for {
		k, err := p.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if k == want {
			return
		}
	}
}

func TestGetObject(t *testing.T) {
	const input = `{"meta": {"version": 2, "tags": ["a", "b"]}, "rest": 1}`
	p := jdoc.NewParser(strings.NewReader(input))

	// Position the cursor on the start of the "meta" object.
	advanceTo(t, p, jdoc.ObjectStart) // document root
	advanceTo(t, p, jdoc.ObjectStart) // the member object

	obj, err := tree.GetObject(p)
	if err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}
	if got, want := obj.JSON(), `{"version":2,"tags":["a","b"]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// The rest of the stream must still be readable in place.
	if p.Current() != jdoc.ObjectEnd {
		t.Fatalf("after GetObject: cursor on %v, want object end", p.Current())
	}
	advance(t, p, jdoc.KeyName)
	if got := p.Text(); got != "rest" {
		t.Errorf(`Text: got %q, want "rest"`, got)
	}
	advance(t, p, jdoc.NumberValue)
	advance(t, p, jdoc.ObjectEnd)
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("Next at end: got %v, want io.EOF", err)
	}
}

func TestGetArray(t *testing.T) {
	const input = `{"items": [1, [2, 3], {"k": 4}], "rest": true}`
	p := jdoc.NewParser(strings.NewReader(input))
	advanceTo(t, p, jdoc.ArrayStart)

	arr, err := tree.GetArray(p)
	if err != nil {
		t.Fatalf("GetArray failed: %v", err)
	}
	if got, want := arr.JSON(), `[1,[2,3],{"k":4}]`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	advance(t, p, jdoc.KeyName)
	if got := p.Text(); got != "rest" {
		t.Errorf(`Text: got %q, want "rest"`, got)
	}
}

func TestGetValue(t *testing.T) {
	t.Run("Structure", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`[[1, 2], "after"]`))
		advance(t, p, jdoc.ArrayStart)
		advance(t, p, jdoc.ArrayStart)
		v, err := tree.GetValue(p)
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if got, want := v.JSON(), `[1,2]`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
		advance(t, p, jdoc.StringValue)
	})
	t.Run("Scalar", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`[31.5, "next"]`))
		advance(t, p, jdoc.ArrayStart)
		advance(t, p, jdoc.NumberValue)

		v, err := tree.GetValue(p)
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		n, ok := v.(tree.Number)
		if !ok || n.Float64() != 31.5 || n.IsInt() {
			t.Errorf("GetValue: got %v, want Number(31.5)", v)
		}
		// A scalar is taken from the current event without advancing.
		if p.Current() != jdoc.NumberValue {
			t.Errorf("after GetValue: cursor on %v, want number value", p.Current())
		}
		advance(t, p, jdoc.StringValue)
	})
	t.Run("Constants", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`[true, false, null]`))
		advance(t, p, jdoc.ArrayStart)
		for _, want := range []tree.Value{tree.True, tree.False, tree.Null} {
			if _, err := p.Next(); err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			v, err := tree.GetValue(p)
			if err != nil {
				t.Fatalf("GetValue failed: %v", err)
			}
			if !tree.Equal(v, want) {
				t.Errorf("GetValue: got %v, want %v", v, want)
			}
		}
	})
}

func TestGetStateErrors(t *testing.T) {
	check := func(t *testing.T, err error) {
		t.Helper()
		var serr *jdoc.StateError
		if !errors.As(err, &serr) {
			t.Errorf("got %v, want *StateError", err)
		}
	}

	t.Run("ObjectOnArrayStart", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`[1]`))
		advance(t, p, jdoc.ArrayStart)
		_, err := tree.GetObject(p)
		check(t, err)
	})
	t.Run("ArrayOnObjectStart", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`{}`))
		advance(t, p, jdoc.ObjectStart)
		_, err := tree.GetArray(p)
		check(t, err)
	})
	t.Run("ObjectBeforeFirstEvent", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`{}`))
		_, err := tree.GetObject(p)
		check(t, err)
	})
	t.Run("ValueOnKey", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`{"k": 1}`))
		advance(t, p, jdoc.ObjectStart)
		advance(t, p, jdoc.KeyName)
		_, err := tree.GetValue(p)
		check(t, err)
	})
	t.Run("ValueOnObjectEnd", func(t *testing.T) {
		p := jdoc.NewParser(strings.NewReader(`{}`))
		advance(t, p, jdoc.ObjectStart)
		advance(t, p, jdoc.ObjectEnd)
		_, err := tree.GetValue(p)
		check(t, err)
	})
}

func TestGetLeavesSourceOpen(t *testing.T) {
	p := jdoc.NewParser(strings.NewReader(`[{"a": 1}, {"b": 2}]`))
	advance(t, p, jdoc.ArrayStart)
	advance(t, p, jdoc.ObjectStart)
	if _, err := tree.GetObject(p); err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}
	advance(t, p, jdoc.ObjectStart)
	obj, err := tree.GetObject(p)
	if err != nil {
		t.Fatalf("second GetObject failed: %v", err)
	}
	if got, want := obj.JSON(), `{"b":2}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	advance(t, p, jdoc.ArrayEnd)
}

func TestSkipMatchesMaterialize(t *testing.T) {
	// Skipping a structure and materializing it must leave the cursor in the
	// same place: the remaining event sequences agree.
	const input = `{"head": {"x": [1, {"y": 2}], "z": null}, "tail": [3, 4]}`

	remaining := func(p *jdoc.Parser) []jdoc.Kind {
		var got []jdoc.Kind
		for {
			k, err := p.Next()
			if err == io.EOF {
				return got
			}
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			got = append(got, k)
		}
	}

	skipped := jdoc.NewParser(strings.NewReader(input))
	advanceTo(t, skipped, jdoc.ObjectStart)
	advanceTo(t, skipped, jdoc.ObjectStart)
	if err := skipped.SkipObject(); err != nil {
		t.Fatalf("SkipObject failed: %v", err)
	}

	materialized := jdoc.NewParser(strings.NewReader(input))
	advanceTo(t, materialized, jdoc.ObjectStart)
	advanceTo(t, materialized, jdoc.ObjectStart)
	if _, err := tree.GetObject(materialized); err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}

	if diff := cmp.Diff(remaining(skipped), remaining(materialized)); diff != "" {
		t.Errorf("Remaining events differ: (-skip, +materialize)\n%s", diff)
	}
}
