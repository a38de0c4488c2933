// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package tree

import "github.com/jdoc-go/jdoc"

// GetObject materializes the object whose start event is standing at the
// cursor of src. On success the cursor is positioned just past the matching
// object end event; the rest of the stream is undisturbed and src remains
// open. GetObject fails with a *jdoc.StateError if the current event is not
// an object start.
func GetObject(src jdoc.Source) (Object, error) {
	if cur := src.Current(); cur != jdoc.ObjectStart {
		return Object{}, &jdoc.StateError{Op: "GetObject", Event: cur}
	}
	r := &Reader{src: src, seeded: true}
	return r.ReadObject()
}

// GetArray materializes the array whose start event is standing at the
// cursor of src, leaving the cursor just past the matching array end event.
// It fails with a *jdoc.StateError if the current event is not an array
// start.
func GetArray(src jdoc.Source) (Array, error) {
	if cur := src.Current(); cur != jdoc.ArrayStart {
		return Array{}, &jdoc.StateError{Op: "GetArray", Event: cur}
	}
	r := &Reader{src: src, seeded: true}
	return r.ReadArray()
}

// GetValue materializes the value standing at the cursor of src: a
// structural start event is consumed through its matching end as for
// GetObject and GetArray, while a scalar value event is returned directly
// without advancing the cursor. GetValue fails with a *jdoc.StateError for
// any other event.
func GetValue(src jdoc.Source) (Value, error) {
	switch cur := src.Current(); cur {
	case jdoc.ObjectStart, jdoc.ArrayStart:
		r := &Reader{src: src, seeded: true}
		return r.ReadValue()
	case jdoc.StringValue:
		return String(src.Text()), nil
	case jdoc.NumberValue:
		return Number{text: src.Text(), isInt: src.IsInt()}, nil
	case jdoc.TrueValue:
		return True, nil
	case jdoc.FalseValue:
		return False, nil
	case jdoc.NullValue:
		return Null, nil
	default:
		return nil, &jdoc.StateError{Op: "GetValue", Event: cur}
	}
}
