// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jsonlens implements a small compile-time-constructed path DSL over
JSON documents — "lenses" — used to rewrite scalar strings found at a
declared position without disturbing the rest of the document.

A lens is built from three primitives: [Root], [Lens.Field], and
[Lens.ArrayElements]. Combined with a leaf transform it becomes a
[Rewriter]: applying it to a JSON document descends the declared path and
replaces every JSON string found at the terminal position, leaving
non-string leaves, missing keys, and type mismatches untouched.

It is built on the standard library's encoding/json token stream rather
than a third-party JSON library — see DESIGN.md for why.
*/
package jsonlens

// stepKind discriminates the two ways a lens can descend one level.
type stepKind int

const (
	stepField stepKind = iota
	stepArrayElements
)

type step struct {
	kind  stepKind
	field string
}

// Lens is an immutable, compile-time-constructed path over a JSON value.
// The zero value is equivalent to [Root].
type Lens struct {
	path []step
}

// Root returns a lens positioned at the document's top-level value.
func Root() Lens {
	return Lens{}
}

// Field returns a lens that requires an object at the current position
// and descends into key. Descending into a missing key, or requiring an
// object where the value is not one, is a no-op for the whole rewrite at
// that branch: the leaf transform is simply never reached there.
func (l Lens) Field(key string) Lens {
	return l.extend(step{kind: stepField, field: key})
}

// ArrayElements returns a lens that requires an array at the current
// position and applies the remainder of the path to every element.
func (l Lens) ArrayElements() Lens {
	return l.extend(step{kind: stepArrayElements})
}

func (l Lens) extend(s step) Lens {
	next := make([]step, len(l.path)+1)
	copy(next, l.path)
	next[len(l.path)] = s
	return Lens{path: next}
}

// MapString combines the lens with a leaf transform, yielding a
// [Rewriter] that can be applied to raw JSON documents.
func (l Lens) MapString(fn func(string) string) Rewriter {
	return Rewriter{lens: l, leaf: fn}
}
