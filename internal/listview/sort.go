package listview

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type keyed[T any] struct {
	rec T
	key value
}

// Sort returns a stably sorted copy of records ordered by the named field.
//
// Strings compare with locale-aware collation, numbers arithmetically and dates
// as instants. Unparseable or missing dates sort after every valid date in
// ascending order. Values that cannot be compared are treated as equal, so an
// unknown field leaves the order unchanged.
func Sort[T any](records []T, schema Schema[T], field string, dir Direction) []T {
	out := slices.Clone(records)
	f, ok := schema.Field(field)
	if !ok || len(out) < 2 {
		return out
	}

	// Keys are extracted once so dates are parsed once per record.
	items := make([]keyed[T], len(out))
	for i, rec := range out {
		items[i] = keyed[T]{rec: rec, key: f.extract(rec)}
	}

	compare := newComparator(schema.locale())
	slices.SortStableFunc(items, func(a, b keyed[T]) int {
		c := compare(a.key, b.key)
		if dir == Descending {
			return -c
		}
		return c
	})

	for i := range items {
		out[i] = items[i].rec
	}
	return out
}

// newComparator builds a comparator for one sort call. Collators keep internal
// buffers and are not safe for concurrent use.
func newComparator(tag language.Tag) func(a, b value) int {
	col := collate.New(tag)
	return func(a, b value) int {
		if a.kind != b.kind {
			return 0
		}
		switch a.kind {
		case KindDate:
			return compareDates(a, b)
		case KindNumber:
			if !a.present || !b.present {
				return 0
			}
			return cmp.Compare(a.number, b.number)
		case KindString, KindStatus:
			if !a.present || !b.present {
				return 0
			}
			return col.CompareString(a.text, b.text)
		default:
			return 0
		}
	}
}

func compareDates(a, b value) int {
	switch {
	case a.dateOK && b.dateOK:
		return a.date.Compare(b.date)
	case a.dateOK:
		return -1
	case b.dateOK:
		return 1
	default:
		return 0
	}
}
