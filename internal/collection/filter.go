package collection

import "strings"

// Filter returns the records that satisfy every non-empty criterion. The
// reserved "search" key matches when any of searchFields contains the term as
// a substring. Slice-valued fields match when any element contains the value.
// Records missing a constrained field are excluded. The input slice is never
// mutated and relative order is preserved.
func Filter[T any](items []T, criteria Criteria, searchFields []string, opts Options) []T {
	if !criteria.Active() {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	field := opts.field()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, criteria, searchFields, field, opts) {
			out = append(out, item)
		}
	}
	return out
}

// Search filters by a free-text term across the named fields. A term that is
// empty or whitespace-only returns a copy of the input unchanged.
func Search[T any](items []T, term string, fields []string) []T {
	return Filter(items, Criteria{SearchKey: term}, fields, Options{})
}

func matches[T any](item T, criteria Criteria, searchFields []string, field FieldFunc, opts Options) bool {
	for key, want := range criteria {
		if key == SearchKey {
			term := strings.TrimSpace(want)
			if term == "" {
				continue
			}
			if !matchesSearch(item, term, searchFields, field, opts) {
				return false
			}
			continue
		}
		if want == "" {
			continue
		}
		value, ok := field(item, key)
		if !ok {
			return false
		}
		if !matchesValue(value, want, opts.exact(key), opts.CaseSensitive) {
			return false
		}
	}
	return true
}

func matchesSearch[T any](item T, term string, searchFields []string, field FieldFunc, opts Options) bool {
	for _, name := range searchFields {
		value, ok := field(item, name)
		if !ok {
			continue
		}
		if matchesValue(value, term, false, opts.CaseSensitive) {
			return true
		}
	}
	return false
}

func matchesValue(value any, want string, exact, caseSensitive bool) bool {
	for _, elem := range elements(value) {
		if matchString(elem, want, exact, caseSensitive) {
			return true
		}
	}
	return false
}

func matchString(have, want string, exact, caseSensitive bool) bool {
	if !caseSensitive {
		have = strings.ToLower(have)
		want = strings.ToLower(want)
	}
	if exact {
		return have == want
	}
	return strings.Contains(have, want)
}
