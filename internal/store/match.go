package store

import (
	"encoding/json"
	"strings"
)

// Matches reports whether the JSON document satisfies the query. Documents
// that fail to parse or lack the field simply do not match.
func Matches(doc []byte, q Query) bool {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return false
	}
	v, ok := lookup(m, q.Field)
	if !ok {
		return false
	}
	switch q.Op {
	case OpEqual:
		return valuesEqual(v, q.Value)
	case OpContains:
		arr, ok := v.([]any)
		if !ok {
			return false
		}
		for _, el := range arr {
			if valuesEqual(el, q.Value) {
				return true
			}
		}
	}
	return false
}

// lookup resolves a dotted field path against nested JSON objects.
func lookup(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = m
	for _, p := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// valuesEqual compares a decoded JSON value with a caller-supplied one,
// normalizing numbers to float64 the way encoding/json does.
func valuesEqual(a, b any) bool {
	if fa, aok := toFloat(a); aok {
		fb, bok := toFloat(b)
		return bok && fa == fb
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}
	if ba, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ba == bb
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
