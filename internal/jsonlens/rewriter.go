// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jsonlens

// Rewriter pairs a [Lens] with a leaf transform, ready to apply to a raw
// JSON document.
type Rewriter struct {
	lens Lens
	leaf func(string) string
}

// Array prepends an [Lens.ArrayElements] step in front of r's path,
// turning a per-element rewriter into one that applies to every element
// of an array at the current position. This backs the
// `column.mapJsonArray(lensBuilder)` surface in the table spec DSL: the
// caller builds the per-element rewriter starting from [Root], and the
// DSL wraps it with Array before attaching it to an [OutputColumn].
func Array(inner Rewriter) Rewriter {
	path := make([]step, len(inner.lens.path)+1)
	path[0] = step{kind: stepArrayElements}
	copy(path[1:], inner.lens.path)
	return Rewriter{lens: Lens{path: path}, leaf: inner.leaf}
}

// Rewrite parses doc, applies the lens's path, replaces every JSON string
// found at the terminal position with leaf(s), and re-serializes. Object
// key insertion order, as observed during parsing, is preserved.
//
// A path segment that cannot be followed — Field requiring an object
// where the value isn't one, a missing key, ArrayElements requiring an
// array where the value isn't one — is a no-op for that branch: the
// input is returned unchanged at (and below) that position, never an
// error.
func (r Rewriter) Rewrite(doc []byte) ([]byte, error) {
	v, err := parseValue(doc)
	if err != nil {
		return nil, err
	}

	applyPath(v, r.lens.path, r.leaf)

	return marshal(v)
}

func applyPath(v *value, path []step, leaf func(string) string) {
	if len(path) == 0 {
		if v.kind == kindString {
			v.str = leaf(v.str)
		}
		return
	}

	s := path[0]
	rest := path[1:]

	switch s.kind {
	case stepField:
		if v.kind != kindObject {
			return
		}
		child, ok := v.objVals[s.field]
		if !ok {
			return
		}
		applyPath(child, rest, leaf)

	case stepArrayElements:
		if v.kind != kindArray {
			return
		}
		for _, elem := range v.arr {
			applyPath(elem, rest, leaf)
		}
	}
}
