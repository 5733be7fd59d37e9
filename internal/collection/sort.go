package collection

import (
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction selects sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort returns a new slice ordered by the named field. Numbers compare
// numerically, times and date-parseable strings by timestamp, decimals by
// value, everything else as case-folded strings. Records whose field is
// missing or nil sort last ascending and first descending. The sort is stable.
func Sort[T any](items []T, field string, dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	if field == "" {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := FieldByName(a, field)
		bv, bok := FieldByName(b, field)
		aok = aok && av != nil
		bok = bok && bv != nil

		// Missing values sort last ascending and first descending, so the
		// nil ordering is negated along with the comparison.
		var cmp int
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			cmp = 1
		case !bok:
			cmp = -1
		default:
			cmp = compareValues(av, bv)
		}
		if dir == Descending {
			return -cmp
		}
		return cmp
	})
	return out
}

func compareValues(a, b any) int {
	if ad, aok := a.(decimal.Decimal); aok {
		if bd, bok := b.(decimal.Decimal); bok {
			return ad.Cmp(bd)
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	as, aok := stringify(a)
	bs, bok := stringify(b)
	if !aok || !bok {
		return 0
	}

	if at, err := parseTimeString(as); err == nil {
		if bt, err := parseTimeString(bs); err == nil {
			return at.Compare(bt)
		}
	}

	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseTimeString(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
