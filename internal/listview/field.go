package listview

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Kind identifies how values of a field are compared and searched.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// value is a single field value extracted from a record.
type value struct {
	kind    Kind
	present bool
	text    string
	number  float64
	date    time.Time
	dateOK  bool
}

// Field describes one searchable/sortable field of a record type.
type Field[T any] struct {
	Name    string
	Kind    Kind
	extract func(T) value
}

// StringField declares a text field compared with locale-aware collation.
func StringField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindString,
		extract: func(rec T) value {
			return value{kind: KindString, present: true, text: get(rec)}
		},
	}
}

// OptionalStringField declares a text field that may be absent on a record.
func OptionalStringField[T any](name string, get func(T) *string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindString,
		extract: func(rec T) value {
			s := get(rec)
			if s == nil {
				return value{kind: KindString}
			}
			return value{kind: KindString, present: true, text: *s}
		},
	}
}

// NumberField declares a numeric field.
func NumberField[T any](name string, get func(T) float64) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindNumber,
		extract: func(rec T) value {
			return value{kind: KindNumber, present: true, number: get(rec)}
		},
	}
}

// DateField declares a date field held as a raw string on the record.
// The raw string is what search matches against; sorting uses the parsed instant.
func DateField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindDate,
		extract: func(rec T) value {
			raw := get(rec)
			t, ok := ParseDate(raw)
			return value{kind: KindDate, present: raw != "", text: raw, date: t, dateOK: ok}
		},
	}
}

// StatusField declares the enumerated status field of a record.
func StatusField[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindStatus,
		extract: func(rec T) value {
			return value{kind: KindStatus, present: true, text: get(rec)}
		},
	}
}

// searchText returns the text a search term is matched against.
func (v value) searchText() (string, bool) {
	if !v.present {
		return "", false
	}
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64), true
	}
	return v.text, true
}

// Schema is the per-entity field table the engine is parameterized with.
type Schema[T any] struct {
	// Entity names the record type in logs and metrics.
	Entity string
	Fields []Field[T]
	// SearchFields are used when a Config does not name its own.
	SearchFields []string
	// StatusField names the field the status filter applies to.
	StatusField string
	// DefaultSort is used when a Config has no sort field.
	DefaultSort string
	// Locale drives string collation. Zero value means English.
	Locale language.Tag
}

// Field looks up a field by name, ignoring case.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field[T]{}, false
}

// HasField reports whether name is a declared field.
func (s Schema[T]) HasField(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// FieldNames lists declared field names in declaration order.
func (s Schema[T]) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (s Schema[T]) locale() language.Tag {
	if s.Locale == language.Und {
		return language.English
	}
	return s.Locale
}

// CheckFields rejects a config naming a sort or search field the schema does
// not declare.
func (s Schema[T]) CheckFields(cfg Config) error {
	if cfg.SortField != "" && !s.HasField(cfg.SortField) {
		return fmt.Errorf("%w: unknown sort field %q, expected one of %s",
			ErrInvalidConfiguration, cfg.SortField, strings.Join(s.FieldNames(), ", "))
	}
	for _, name := range cfg.SearchFields {
		if !s.HasField(name) {
			return fmt.Errorf("%w: unknown search field %q", ErrInvalidConfiguration, name)
		}
	}
	return nil
}
