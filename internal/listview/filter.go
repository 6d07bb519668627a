package listview

import "strings"

// Filter returns the records matching the search term and status filter of cfg,
// in their original relative order. The input slice is not modified.
//
// A record matches the search when any search field contains the term,
// ignoring case. A field that is absent on a record never matches.
func Filter[T any](records []T, schema Schema[T], cfg Config) []T {
	term := strings.ToLower(cfg.SearchTerm)
	fields := resolveFields(schema, cfg.searchFields(schema.SearchFields))

	var status *Field[T]
	if cfg.StatusFilter != nil {
		if f, ok := schema.Field(schema.StatusField); ok {
			status = &f
		}
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if term != "" && !matchesSearch(rec, fields, term) {
			continue
		}
		if cfg.StatusFilter != nil && !matchesStatus(rec, status, *cfg.StatusFilter) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func resolveFields[T any](schema Schema[T], names []string) []Field[T] {
	fields := make([]Field[T], 0, len(names))
	for _, name := range names {
		if f, ok := schema.Field(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func matchesSearch[T any](rec T, fields []Field[T], term string) bool {
	for _, f := range fields {
		text, ok := f.extract(rec).searchText()
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

func matchesStatus[T any](rec T, field *Field[T], want string) bool {
	if field == nil {
		return false
	}
	v := field.extract(rec)
	if !v.present {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v.text), strings.TrimSpace(want))
}

// FilterStatus keeps only the records whose status field matches cfg's status
// filter. Statuses compare case-insensitively with surrounding blanks ignored.
// Without a status filter the records are returned unchanged.
func FilterStatus[T any](records []T, schema Schema[T], cfg Config) []T {
	if cfg.StatusFilter == nil {
		return records
	}
	return Filter(records, schema, Config{StatusFilter: cfg.StatusFilter})
}
