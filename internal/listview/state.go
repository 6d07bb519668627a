package listview

import "strings"

// State owns a Config across user interactions and enforces its transitions:
// changing the search term or status filter returns to page 1, clicking the
// active sort field toggles direction, and clicking another field sorts by it
// ascending.
type State struct {
	cfg Config
}

// NewState starts at page 1 sorted ascending by sortField.
func NewState(sortField string, pageSize int, mode Mode) *State {
	return &State{cfg: Config{
		SortField:     sortField,
		SortDirection: Ascending,
		Page:          1,
		PageSize:      pageSize,
		Mode:          mode,
	}}
}

// Config returns a snapshot of the current configuration.
func (s *State) Config() Config {
	cfg := s.cfg
	if s.cfg.StatusFilter != nil {
		status := *s.cfg.StatusFilter
		cfg.StatusFilter = &status
	}
	cfg.SearchFields = append([]string(nil), s.cfg.SearchFields...)
	return cfg
}

func (s *State) SetSearch(term string) {
	if term == s.cfg.SearchTerm {
		return
	}
	s.cfg.SearchTerm = term
	s.cfg.Page = 1
}

func (s *State) SetStatusFilter(status string) {
	if s.cfg.StatusFilter != nil && *s.cfg.StatusFilter == status {
		return
	}
	s.cfg.StatusFilter = &status
	s.cfg.Page = 1
}

func (s *State) ClearStatusFilter() {
	if s.cfg.StatusFilter == nil {
		return
	}
	s.cfg.StatusFilter = nil
	s.cfg.Page = 1
}

// ClickSort handles a click on a sortable column header.
func (s *State) ClickSort(field string) {
	if strings.EqualFold(field, s.cfg.SortField) {
		s.cfg.SortDirection = s.cfg.SortDirection.Toggle()
		return
	}
	s.cfg.SortField = field
	s.cfg.SortDirection = Ascending
}

// SetPage stores page as-is; out-of-range pages are rejected by Paginate.
func (s *State) SetPage(page int) {
	s.cfg.Page = page
}

// NextPage advances unless already on the last page.
func (s *State) NextPage(totalPages int) {
	if s.cfg.Page < totalPages {
		s.cfg.Page++
	}
}

// PrevPage goes back unless already on the first page.
func (s *State) PrevPage() {
	if s.cfg.Page > 1 {
		s.cfg.Page--
	}
}

// ResetPage returns to page 1, the fallback after a rejected configuration.
func (s *State) ResetPage() {
	s.cfg.Page = 1
}
