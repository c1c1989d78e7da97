// Package locale implements reading and writing of nested locale JSON files.
//
// A locale file is a JSON object whose values are strings, nested objects,
// or other JSON primitives:
//
//	{
//	    "greeting": "Hello {{ name }}",
//	    "cart": { "empty": "Your cart is empty" }
//	}
//
// Key order is preserved from the source document so that translated files
// diff cleanly against the file they were produced from.
package locale

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tree is an ordered JSON object.
type Tree struct {
	keys   []string
	values map[string]Value
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{values: make(map[string]Value)}
}

// Set stores v under key. A key that already exists keeps its position.
func (t *Tree) Set(key string, v Value) {
	if t.values == nil {
		t.values = make(map[string]Value)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in their original order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of keys.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// CountStrings returns the number of string leaves in the tree,
// descending into nested objects.
func (t *Tree) CountStrings() int {
	n := 0
	for _, k := range t.Keys() {
		v := t.values[k]
		switch v.Kind() {
		case KindString:
			n++
		case KindObject:
			n += v.obj.CountStrings()
		}
	}
	return n
}

// MarshalJSON encodes the tree compactly, preserving key order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTree(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// ParseFile reads and parses a locale file.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse parses a JSON document whose top level must be an object.
func Parse(data []byte) (*Tree, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	t, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("expected a JSON object at top level, got %s", v.Kind())
	}
	return t, nil
}

// Decode parses any JSON document into a Value.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("parsing JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("parsing JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %v", tok)
		}
	case string:
		return String(tok), nil
	case json.Number:
		return Number(tok), nil
	case bool:
		return Bool(tok), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	t := NewTree()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := kt.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string key, got %T", kt)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		t.Set(key, v)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Object(t), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, v)
	}
	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Marshal produces the file representation of t: 2-space indentation,
// original key order, and a trailing newline.
func Marshal(t *Tree) ([]byte, error) {
	compact, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteFile writes t to path, creating parent directories as needed.
func WriteFile(path string, t *Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
