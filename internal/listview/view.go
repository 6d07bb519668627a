package listview

// View is a page of rendered rows together with the query that produced it.
type View[R any] struct {
	Rows          []R       `json:"rows"`
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	TotalItems    int       `json:"totalItems"`
	TotalPages    int       `json:"totalPages"`
	SortField     string    `json:"sortField"`
	SortDirection Direction `json:"sortDirection"`
	Mode          Mode      `json:"mode"`
	// Error is set when the source failed; Rows is then empty.
	Error string `json:"error,omitempty"`
}

// NewView maps a result page into rows.
func NewView[T, R any](res Result[T], schema Schema[T], cfg Config, row func(T) R) *View[R] {
	rows := make([]R, 0, len(res.Items))
	for _, item := range res.Items {
		rows = append(rows, row(item))
	}
	return &View[R]{
		Rows:          rows,
		Page:          res.Page,
		PageSize:      res.PageSize,
		TotalItems:    res.TotalItems,
		TotalPages:    res.TotalPages,
		SortField:     cfg.sortField(schema.DefaultSort),
		SortDirection: direction(cfg.SortDirection),
		Mode:          mode(cfg.Mode),
	}
}

// FailedView is the empty view shown when the source could not be read.
func FailedView[T, R any](schema Schema[T], cfg Config, err error) *View[R] {
	return &View[R]{
		Rows:          []R{},
		Page:          cfg.Page,
		PageSize:      cfg.PageSize,
		SortField:     cfg.sortField(schema.DefaultSort),
		SortDirection: direction(cfg.SortDirection),
		Mode:          mode(cfg.Mode),
		Error:         err.Error(),
	}
}

func direction(d Direction) Direction {
	if d == "" {
		return Ascending
	}
	return d
}

func mode(m Mode) Mode {
	if m == "" {
		return ModeClientSide
	}
	return m
}
