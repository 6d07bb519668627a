package listview

// Apply runs the client-side pipeline: filter, sort by the configured field
// (or the schema default) and paginate.
func Apply[T any](records []T, schema Schema[T], cfg Config) (Result[T], error) {
	if err := cfg.Validate(); err != nil {
		return Result[T]{}, err
	}
	filtered := Filter(records, schema, cfg)
	sorted := Sort(filtered, schema, cfg.sortField(schema.DefaultSort), cfg.SortDirection)
	return Paginate(sorted, cfg.Page, cfg.PageSize)
}

// SourcePage is one page delivered by a server-paginated source.
type SourcePage[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}

// ApplyPage runs the server-side pipeline. The source already searched and
// paginated, so sorting applies and the pagination metadata comes from the
// source page. The status filter is applied again over the page because
// remote sources may not support it.
func ApplyPage[T any](src SourcePage[T], schema Schema[T], cfg Config) (Result[T], error) {
	if err := cfg.Validate(); err != nil {
		return Result[T]{}, err
	}

	items := FilterStatus(src.Items, schema, cfg)
	if len(items) > cfg.PageSize {
		items = items[:cfg.PageSize]
	}
	sorted := Sort(items, schema, cfg.sortField(schema.DefaultSort), cfg.SortDirection)

	page := src.Page
	if page < 1 {
		page = cfg.Page
	}
	totalPages := src.TotalPages
	if totalPages <= 0 {
		totalPages = TotalPages(src.Total, cfg.PageSize)
	}
	return Result[T]{
		Items:      sorted,
		Page:       page,
		PageSize:   cfg.PageSize,
		TotalItems: src.Total,
		TotalPages: totalPages,
	}, nil
}
