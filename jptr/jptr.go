// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

// Package jptr implements RFC 6901 JSON Pointers over the document model of
// the tree package: parsing of pointer strings, navigation (Get), and the
// structural edits Add, Remove, and Replace.
//
// Edits never modify their input. Each mutation rebuilds only the containers
// along the path from the root to the target and returns a new root; all
// untouched subtrees are shared by reference between the old and the new
// document.
package jptr

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jdoc-go/jdoc/tree"
)

// Reasons a pointer can fail to resolve, reported inside a *ResolveError.
var (
	ErrMissingKey = errors.New("no such member")
	ErrBadIndex   = errors.New("malformed array index")
	ErrRange      = errors.New("index out of range")
	ErrNotStruct  = errors.New("value is not an object or array")
	ErrKindClash  = errors.New("document kind mismatch")
	ErrNoParent   = errors.New("the whole document has no parent")
)

// A SyntaxError reports a malformed pointer string.
type SyntaxError struct {
	Pointer string
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid pointer %q: %s", e.Pointer, e.Message)
}

// A ResolveError reports a pointer that does not resolve in the document it
// was applied to. Err wraps the reason, one of the Err* values above.
type ResolveError struct {
	Pointer string
	Token   string // the reference token that failed, decoded
	Err     error
}

// Error satisfies the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("pointer %q at token %q: %v", e.Pointer, e.Token, e.Err)
}

// Unwrap supports error wrapping.
func (e *ResolveError) Unwrap() error { return e.Err }

// A Pointer is a parsed RFC 6901 JSON Pointer. The zero Pointer denotes the
// whole document. A Pointer is stateless: it may be applied to any number of
// documents, concurrently if desired.
type Pointer struct {
	raw  string
	toks []string // decoded reference tokens
}

// Parse parses s as a JSON Pointer. The empty string denotes the whole
// document; any other pointer must begin with "/". The escapes "~1" and
// "~0" decode to "/" and "~" in that order; any other use of "~" is a
// syntax error.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return Pointer{}, &SyntaxError{Pointer: s, Message: `must be empty or begin with "/"`}
	}
	parts := strings.Split(s[1:], "/")
	toks := make([]string, len(parts))
	for i, part := range parts {
		dec, err := decodeToken(part)
		if err != nil {
			return Pointer{}, &SyntaxError{Pointer: s, Message: err.Error()}
		}
		toks[i] = dec
	}
	return Pointer{raw: s, toks: toks}, nil
}

// decodeToken replaces the escape sequences "~1" and "~0" in a reference
// token. Decoding "~1" before "~0" matters: the other order would turn the
// token "~01" into "/" instead of "~1".
func decodeToken(tok string) (string, error) {
	if !strings.ContainsRune(tok, '~') {
		return tok, nil
	}
	var sb strings.Builder
	sb.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			sb.WriteByte(tok[i])
			continue
		}
		if i+1 == len(tok) {
			return "", fmt.Errorf("incomplete escape in token %q", tok)
		}
		i++
		switch tok[i] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape %q in token %q", tok[i-1:i+1], tok)
		}
	}
	return sb.String(), nil
}

// String returns the pointer in its original textual form.
func (p Pointer) String() string { return p.raw }

// IsRoot reports whether p denotes the whole document.
func (p Pointer) IsRoot() bool { return len(p.toks) == 0 }

// Tokens returns a copy of the decoded reference tokens of p.
func (p Pointer) Tokens() []string { return slices.Clone(p.toks) }

// Equal reports whether two pointers have the same decoded token sequence.
// Pointers spelled differently may be equal: "/~0" and a pointer written
// with a bare "~" decode alike.
func (p Pointer) Equal(q Pointer) bool { return slices.Equal(p.toks, q.toks) }

// Get returns the value p resolves to in doc.
func (p Pointer) Get(doc tree.Value) (tree.Value, error) {
	cur := doc
	for _, tok := range p.toks {
		next, err := p.child(cur, tok)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Add returns a new document derived from doc with v added at p.
//
// If the final reference token names an object member, the member is added,
// replacing the value of an existing member with that key in place. If it
// indexes an array, v is inserted before that index; the index may equal the
// array length, and the token "-" appends after the last element. The empty
// pointer replaces the whole document, which requires v to be a structure of
// the same kind as doc.
func (p Pointer) Add(doc, v tree.Value) (tree.Value, error) {
	if v == nil {
		return nil, &ResolveError{Pointer: p.raw, Err: errors.New("nil value")}
	}
	if p.IsRoot() {
		switch doc.(type) {
		case tree.Object:
			if _, ok := v.(tree.Object); ok {
				return v, nil
			}
		case tree.Array:
			if _, ok := v.(tree.Array); ok {
				return v, nil
			}
		}
		return nil, &ResolveError{Pointer: p.raw, Err: ErrKindClash}
	}

	path, parent, err := p.descend(doc)
	if err != nil {
		return nil, err
	}
	final := p.toks[len(p.toks)-1]

	var edited tree.Value
	switch t := parent.(type) {
	case tree.Object:
		edited = objectWith(t, final, v)
	case tree.Array:
		idx, err := arrayIndex(final, t.Len(), true)
		if err != nil {
			return nil, &ResolveError{Pointer: p.raw, Token: final, Err: err}
		}
		edited = arrayInsert(t, idx, v)
	default:
		return nil, &ResolveError{Pointer: p.raw, Token: final, Err: ErrNotStruct}
	}
	return rebuild(path, edited), nil
}

// Remove returns a new document derived from doc with the value p resolves
// to deleted. The empty pointer cannot be removed.
func (p Pointer) Remove(doc tree.Value) (tree.Value, error) {
	if p.IsRoot() {
		return nil, &ResolveError{Pointer: p.raw, Err: ErrNoParent}
	}
	path, parent, err := p.descend(doc)
	if err != nil {
		return nil, err
	}
	final := p.toks[len(p.toks)-1]

	var edited tree.Value
	switch t := parent.(type) {
	case tree.Object:
		if _, ok := t.Find(final); !ok {
			return nil, &ResolveError{Pointer: p.raw, Token: final, Err: ErrMissingKey}
		}
		edited = objectWithout(t, final)
	case tree.Array:
		idx, err := arrayIndex(final, t.Len(), false)
		if err != nil {
			return nil, &ResolveError{Pointer: p.raw, Token: final, Err: err}
		}
		edited = arrayWithout(t, idx)
	default:
		return nil, &ResolveError{Pointer: p.raw, Token: final, Err: ErrNotStruct}
	}
	return rebuild(path, edited), nil
}

// Replace returns a new document derived from doc with the value p resolves
// to substituted by v. The target must exist; the empty pointer cannot be
// replaced.
func (p Pointer) Replace(doc, v tree.Value) (tree.Value, error) {
	if v == nil {
		return nil, &ResolveError{Pointer: p.raw, Err: errors.New("nil value")}
	}
	if p.IsRoot() {
		return nil, &ResolveError{Pointer: p.raw, Err: ErrNoParent}
	}
	path, parent, err := p.descend(doc)
	if err != nil {
		return nil, err
	}
	final := p.toks[len(p.toks)-1]

	var edited tree.Value
	switch t := parent.(type) {
	case tree.Object:
		if _, ok := t.Find(final); !ok {
			return nil, &ResolveError{Pointer: p.raw, Token: final, Err: ErrMissingKey}
		}
		edited = objectWith(t, final, v)
	case tree.Array:
		idx, err := arrayIndex(final, t.Len(), false)
		if err != nil {
			return nil, &ResolveError{Pointer: p.raw, Token: final, Err: err}
		}
		edited = arrayWith(t, idx, v)
	default:
		return nil, &ResolveError{Pointer: p.raw, Token: final, Err: ErrNotStruct}
	}
	return rebuild(path, edited), nil
}

// child resolves one reference token against cur with the strict grammar
// used for navigation: object tokens are literal keys, array tokens are
// canonical indexes strictly below the length.
func (p Pointer) child(cur tree.Value, tok string) (tree.Value, error) {
	switch t := cur.(type) {
	case tree.Object:
		v, ok := t.Find(tok)
		if !ok {
			return nil, &ResolveError{Pointer: p.raw, Token: tok, Err: ErrMissingKey}
		}
		return v, nil
	case tree.Array:
		idx, err := arrayIndex(tok, t.Len(), false)
		if err != nil {
			return nil, &ResolveError{Pointer: p.raw, Token: tok, Err: err}
		}
		return t.At(idx), nil
	default:
		return nil, &ResolveError{Pointer: p.raw, Token: tok, Err: ErrNotStruct}
	}
}

// A pathStep records one container traversed on the way to the target,
// along with the position the edited child occupies in it.
type pathStep struct {
	obj   tree.Object // exactly one of obj, arr is meaningful
	arr   tree.Array
	isObj bool
	key   string
	idx   int
}

// descend resolves every token of p but the last, recording the traversed
// containers. It returns the recorded path and the parent container the
// final token applies to. Iterative by construction: pointer length, not
// stack depth, bounds the walk.
func (p Pointer) descend(doc tree.Value) ([]pathStep, tree.Value, error) {
	path := make([]pathStep, 0, len(p.toks)-1)
	cur := doc
	for _, tok := range p.toks[:len(p.toks)-1] {
		switch t := cur.(type) {
		case tree.Object:
			v, ok := t.Find(tok)
			if !ok {
				return nil, nil, &ResolveError{Pointer: p.raw, Token: tok, Err: ErrMissingKey}
			}
			path = append(path, pathStep{obj: t, isObj: true, key: tok})
			cur = v
		case tree.Array:
			idx, err := arrayIndex(tok, t.Len(), false)
			if err != nil {
				return nil, nil, &ResolveError{Pointer: p.raw, Token: tok, Err: err}
			}
			path = append(path, pathStep{arr: t, idx: idx})
			cur = t.At(idx)
		default:
			return nil, nil, &ResolveError{Pointer: p.raw, Token: tok, Err: ErrNotStruct}
		}
	}
	return path, cur, nil
}

// rebuild wraps the edited container back up the recorded path, replacing
// one child per level and sharing every other subtree with the original.
func rebuild(path []pathStep, edited tree.Value) tree.Value {
	v := edited
	for i := len(path) - 1; i >= 0; i-- {
		st := path[i]
		if st.isObj {
			v = objectWith(st.obj, st.key, v)
		} else {
			v = arrayWith(st.arr, st.idx, v)
		}
	}
	return v
}

// arrayIndex validates tok as an array reference token against an array of
// length n. With insert true the extended mutation grammar applies: "-" and
// the index equal to n denote appending. Indexes are canonical decimal:
// no sign, no leading zero unless the token is exactly "0".
func arrayIndex(tok string, n int, insert bool) (int, error) {
	if tok == "-" && insert {
		return n, nil
	}
	if tok == "" {
		return 0, ErrBadIndex
	}
	idx := 0
	for i := 0; i < len(tok); i++ {
		ch := tok[i]
		if ch < '0' || ch > '9' {
			return 0, ErrBadIndex
		}
		if idx > (1<<31-1-int(ch-'0'))/10 {
			return 0, ErrRange
		}
		idx = idx*10 + int(ch-'0')
	}
	if len(tok) > 1 && tok[0] == '0' {
		return 0, ErrBadIndex
	}
	if idx > n || (!insert && idx == n) {
		return 0, ErrRange
	}
	return idx, nil
}

// objectWith returns o with the member key set to v: an existing member is
// replaced in place, a new member is appended at the end.
func objectWith(o tree.Object, key string, v tree.Value) tree.Object {
	b := tree.NewObjectBuilder()
	for _, m := range o.All() {
		b.Add(m.Key, m.Value)
	}
	b.Add(key, v)
	return b.Build()
}

// objectWithout returns o with the member key deleted.
// Precondition: the member exists.
func objectWithout(o tree.Object, key string) tree.Object {
	b := tree.NewObjectBuilder()
	for _, m := range o.All() {
		if m.Key != key {
			b.Add(m.Key, m.Value)
		}
	}
	return b.Build()
}

// arrayWith returns a with the element at idx replaced by v.
func arrayWith(a tree.Array, idx int, v tree.Value) tree.Array {
	b := tree.NewArrayBuilder()
	for i, e := range a.All() {
		if i == idx {
			b.Add(v)
		} else {
			b.Add(e)
		}
	}
	return b.Build()
}

// arrayInsert returns a with v inserted before idx; idx == a.Len() appends.
func arrayInsert(a tree.Array, idx int, v tree.Value) tree.Array {
	b := tree.NewArrayBuilder()
	for i, e := range a.All() {
		if i == idx {
			b.Add(v)
		}
		b.Add(e)
	}
	if idx == a.Len() {
		b.Add(v)
	}
	return b.Build()
}

// arrayWithout returns a with the element at idx deleted.
func arrayWithout(a tree.Array, idx int) tree.Array {
	b := tree.NewArrayBuilder()
	for i, e := range a.All() {
		if i != idx {
			b.Add(e)
		}
	}
	return b.Build()
}
