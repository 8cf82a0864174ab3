// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jsonlens

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// kind discriminates the shapes a parsed JSON value can take.
type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// value is an order-preserving parse of a single JSON document. Go's
// encoding/json decodes objects into map[string]any, which discards key
// order; spec.md requires re-serialization to preserve the object key
// insertion order observed during parse, so rewriting walks this
// intermediate structure instead of the standard library's map form.
type value struct {
	kind kind

	boolean bool
	number  json.Number
	str     string

	arr []*value

	// objKeys preserves insertion order; objVals is keyed the same way.
	objKeys []string
	objVals map[string]*value
}

// parseValue decodes a single JSON document into an order-preserving value
// tree using a token-stream decoder.
func parseValue(data []byte) (*value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("jsonlens: parse: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("jsonlens: unexpected delimiter %q", t)
		}
	case string:
		return &value{kind: kindString, str: t}, nil
	case json.Number:
		return &value{kind: kindNumber, number: t}, nil
	case bool:
		return &value{kind: kindBool, boolean: t}, nil
	case nil:
		return &value{kind: kindNull}, nil
	default:
		return nil, fmt.Errorf("jsonlens: unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (*value, error) {
	v := &value{kind: kindObject, objVals: make(map[string]*value)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonlens: expected object key, got %T", keyTok)
		}

		elem, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		if _, exists := v.objVals[key]; !exists {
			v.objKeys = append(v.objKeys, key)
		}
		v.objVals[key] = elem
	}
	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (*value, error) {
	v := &value{kind: kindArray}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		v.arr = append(v.arr, elem)
	}
	// consume the closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

// marshal re-serializes a value tree, writing object keys in objKeys order.
func marshal(v *value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v *value) error {
	switch v.kind {
	case kindNull:
		buf.WriteString("null")
	case kindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case kindNumber:
		buf.WriteString(v.number.String())
	case kindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case kindArray:
		buf.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case kindObject:
		buf.WriteByte('{')
		for i, key := range v.objKeys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeValue(buf, v.objVals[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsonlens: unknown value kind %d", v.kind)
	}
	return nil
}
