package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

// ListDefaults fill in list parameters a request leaves out.
type ListDefaults struct {
	PageSize int
	Mode     listview.Mode
}

// ParseListConfig reads a list view configuration from query parameters:
// search, fields, status, sort, dir, page, pageSize (or limit) and mode.
// Sort and search fields must exist in schema.
func ParseListConfig[T any](r *http.Request, schema listview.Schema[T], defaults ListDefaults) (listview.Config, error) {
	q := r.URL.Query()
	cfg := listview.Config{
		SearchTerm: q.Get("search"),
		SortField:  q.Get("sort"),
		Page:       1,
		PageSize:   defaults.PageSize,
		Mode:       defaults.Mode,
	}

	if status := q.Get("status"); status != "" {
		cfg.StatusFilter = &status
	}
	if fields := q.Get("fields"); fields != "" {
		for _, f := range strings.Split(fields, ",") {
			cfg.SearchFields = append(cfg.SearchFields, strings.TrimSpace(f))
		}
	}
	if err := schema.CheckFields(cfg); err != nil {
		return listview.Config{}, err
	}

	dir, err := listview.ParseDirection(q.Get("dir"))
	if err != nil {
		return listview.Config{}, err
	}
	cfg.SortDirection = dir

	if raw := q.Get("mode"); raw != "" {
		mode, err := listview.ParseMode(raw)
		if err != nil {
			return listview.Config{}, err
		}
		cfg.Mode = mode
	}

	if cfg.Page, err = intParam(q.Get("page"), cfg.Page, "page"); err != nil {
		return listview.Config{}, err
	}
	size := q.Get("pageSize")
	if size == "" {
		size = q.Get("limit")
	}
	if cfg.PageSize, err = intParam(size, cfg.PageSize, "pageSize"); err != nil {
		return listview.Config{}, err
	}
	return cfg, nil
}

// parseSourceQuery reads page, limit, search and status. ok is false when the
// request carries no paging parameters and wants the full set.
func parseSourceQuery(r *http.Request, defaultLimit int) (q recordsource.Query, ok bool, err error) {
	values := r.URL.Query()
	if values.Get("page") == "" && values.Get("limit") == "" {
		return recordsource.Query{}, false, nil
	}
	q = recordsource.Query{
		Search: values.Get("search"),
		Status: values.Get("status"),
	}
	if q.Page, err = intParam(values.Get("page"), 1, "page"); err != nil {
		return q, true, err
	}
	if q.Limit, err = intParam(values.Get("limit"), defaultLimit, "limit"); err != nil {
		return q, true, err
	}
	return q, true, nil
}

func intParam(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", listview.ErrInvalidConfiguration, name, raw)
	}
	return n, nil
}

func idParam(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", listview.ErrInvalidConfiguration, raw)
	}
	return id, nil
}
