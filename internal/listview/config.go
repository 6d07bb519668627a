package listview

import (
	"fmt"
	"strings"
)

// Direction is the sort direction of a list view.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection parses "asc" or "desc". An empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", ErrInvalidConfiguration, s)
	}
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Mode selects which side of the source boundary owns search and pagination.
type Mode string

const (
	// ModeClientSide fetches the full record set and filters, sorts and pages it locally.
	ModeClientSide Mode = "client"
	// ModeServerSide lets the source search and page; sort, status filter and badges apply locally.
	ModeServerSide Mode = "server"
)

// ParseMode parses "client" or "server". An empty string means client-side.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client", "client-side", "client_side":
		return ModeClientSide, nil
	case "server", "server-side", "server_side":
		return ModeServerSide, nil
	default:
		return "", fmt.Errorf("%w: unknown pagination mode %q", ErrInvalidConfiguration, s)
	}
}

// Config is the search, sort, filter and pagination parameters of one list query.
type Config struct {
	SearchTerm string
	// SearchFields overrides the schema's default search fields when non-empty.
	SearchFields  []string
	StatusFilter  *string
	SortField     string
	SortDirection Direction
	Page          int
	PageSize      int
	Mode          Mode
}

// WithStatus returns a copy of c filtered to the given status.
func (c Config) WithStatus(status string) Config {
	c.StatusFilter = &status
	return c
}

func (c Config) searchFields(defaults []string) []string {
	if len(c.SearchFields) > 0 {
		return c.SearchFields
	}
	return defaults
}

func (c Config) sortField(def string) string {
	if c.SortField != "" {
		return c.SortField
	}
	return def
}

// Validate checks the paging fields.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidConfiguration, c.PageSize)
	}
	if c.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidConfiguration, c.Page)
	}
	return nil
}
