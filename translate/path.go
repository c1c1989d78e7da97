package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minios-linux/localetrans/locale"
)

// ResultPath is a pre-split dotted path such as "translations.0.translatedText".
// Numeric segments index into arrays; other segments select object keys.
type ResultPath []string

// ParseResultPath splits a dotted path. An empty string yields an empty path,
// which resolves to the response body itself.
func ParseResultPath(s string) ResultPath {
	if s == "" {
		return ResultPath{}
	}
	return strings.Split(s, ".")
}

func (p ResultPath) String() string {
	return strings.Join(p, ".")
}

// Resolve walks v along the path and returns the string found at the end.
// It fails on the first segment that is missing or cannot be indexed.
func (p ResultPath) Resolve(v locale.Value) (string, error) {
	cur := v
	for i, seg := range p {
		next, err := step(cur, seg)
		if err != nil {
			return "", fmt.Errorf("segment %d (%q): %w", i, seg, err)
		}
		cur = next
	}
	s, ok := cur.AsString()
	if !ok {
		return "", fmt.Errorf("expected string, got %s", cur.Kind())
	}
	return s, nil
}

func step(v locale.Value, seg string) (locale.Value, error) {
	switch v.Kind() {
	case locale.KindObject:
		obj, _ := v.AsObject()
		next, ok := obj.Get(seg)
		if !ok {
			return locale.Value{}, fmt.Errorf("key not found")
		}
		return next, nil
	case locale.KindArray:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return locale.Value{}, fmt.Errorf("array index is not a number")
		}
		items, _ := v.AsArray()
		if idx < 0 || idx >= len(items) {
			return locale.Value{}, fmt.Errorf("index out of range (len %d)", len(items))
		}
		return items[idx], nil
	default:
		return locale.Value{}, fmt.Errorf("cannot index into %s", v.Kind())
	}
}
