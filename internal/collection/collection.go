// Package collection provides generic filter, sort, search, and pagination
// transforms for in-memory record sets. It has no knowledge of concrete entity
// schemas: callers name the fields they care about and records are read through
// a pluggable field accessor.
package collection

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// SearchKey is the reserved criteria key that triggers free-text search across
// the caller-supplied search fields instead of a per-field match.
const SearchKey = "search"

// Criteria maps filter keys to requested values. An absent key or an empty
// string value means "no constraint" for that key, never "match empty".
type Criteria map[string]string

// Active reports whether any criterion in c constrains the result set.
func (c Criteria) Active() bool {
	for key, value := range c {
		if key == SearchKey {
			if strings.TrimSpace(value) != "" {
				return true
			}
			continue
		}
		if value != "" {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of c.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	for key, value := range c {
		out[key] = value
	}
	return out
}

// FieldFunc resolves a named field on a record. The second return value is
// false when the record has no such field.
type FieldFunc func(item any, name string) (any, bool)

// Options tunes matching behavior for Filter and Search.
type Options struct {
	// CaseSensitive disables the default case folding on string comparisons.
	CaseSensitive bool
	// ExactKeys lists criteria keys that must match a field value exactly
	// rather than by substring.
	ExactKeys []string
	// Field overrides the default reflection-based field accessor.
	Field FieldFunc
}

func (o Options) field() FieldFunc {
	if o.Field != nil {
		return o.Field
	}
	return FieldByName
}

func (o Options) exact(key string) bool {
	for _, k := range o.ExactKeys {
		if k == key {
			return true
		}
	}
	return false
}

// FieldByName is the default field accessor. Maps are indexed directly;
// structs are matched by json tag first, then by case-insensitive field name.
// Pointers are dereferenced, nil pointers resolve to no field.
func FieldByName(item any, name string) (any, bool) {
	switch m := item.(type) {
	case map[string]any:
		v, ok := m[name]
		return v, ok
	case map[string]string:
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if comma := strings.IndexByte(tag, ','); comma >= 0 {
			tag = tag[:comma]
		}
		if tag == name || (tag == "" && strings.EqualFold(sf.Name, name)) {
			return rv.Field(i).Interface(), true
		}
	}
	// Fall back on field-name match for tagged structs queried by Go name.
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

// stringify renders a scalar field value for matching. Slices are handled by
// the caller, which matches per element.
func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case time.Time:
		return s.Format(time.RFC3339), true
	case fmt.Stringer:
		return s.String(), true
	case bool:
		if s {
			return "true", true
		}
		return "false", true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		// Named string types (statuses, tiers) land here.
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), true
	case reflect.Bool:
		if rv.Bool() {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

// elements expands slice-valued fields into per-element strings. Non-slice
// values return a single element.
func elements(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := stringify(e); ok {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := stringify(v); ok {
		return []string{s}
	}
	return nil
}
