// Package recordsource defines the contract between list views and the stores
// that supply their records, and runs list queries against it.
package recordsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rpggio/fleetview/internal/listview"
)

// ErrUnavailable indicates the source could not deliver records.
var ErrUnavailable = errors.New("record source unavailable")

// Query is a server-side page request.
type Query struct {
	Page   int
	Limit  int
	Search string
	// Status restricts results to one status when non-empty.
	Status string
}

// Source supplies records either as a full set or as server-paginated pages.
type Source[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchPage(ctx context.Context, q Query) (listview.SourcePage[T], error)
}

var (
	listQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetview_list_queries_total",
		Help: "List view queries by entity and pagination mode.",
	}, []string{"entity", "mode"})

	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetview_source_failures_total",
		Help: "Record source fetch failures by entity.",
	}, []string{"entity"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleetview_source_fetch_duration_seconds",
		Help:    "Record source fetch latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "mode"})
)

// Load fetches records for cfg and runs them through the list view engine.
// In client-side mode the full set is fetched and filtered, sorted and paged
// locally. In server-side mode the source searches and pages. Sorting and the
// status filter are applied locally over the returned page, since a remote
// source may ignore Query.Status.
//
// Configuration errors wrap listview.ErrInvalidConfiguration and are reported
// before the source is contacted. Fetch errors wrap ErrUnavailable.
func Load[T any](ctx context.Context, src Source[T], schema listview.Schema[T], cfg listview.Config) (listview.Result[T], error) {
	if err := cfg.Validate(); err != nil {
		return listview.Result[T]{}, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = listview.ModeClientSide
	}
	listQueries.WithLabelValues(schema.Entity, string(mode)).Inc()
	start := time.Now()

	switch mode {
	case listview.ModeServerSide:
		q := Query{Page: cfg.Page, Limit: cfg.PageSize, Search: cfg.SearchTerm}
		if cfg.StatusFilter != nil {
			q.Status = *cfg.StatusFilter
		}
		page, err := src.FetchPage(ctx, q)
		fetchDuration.WithLabelValues(schema.Entity, string(mode)).Observe(time.Since(start).Seconds())
		if err != nil {
			fetchFailures.WithLabelValues(schema.Entity).Inc()
			return listview.Result[T]{}, fmt.Errorf("%w: fetch %s page: %w", ErrUnavailable, schema.Entity, err)
		}
		return listview.ApplyPage(page, schema, cfg)
	case listview.ModeClientSide:
		records, err := src.FetchAll(ctx)
		fetchDuration.WithLabelValues(schema.Entity, string(mode)).Observe(time.Since(start).Seconds())
		if err != nil {
			fetchFailures.WithLabelValues(schema.Entity).Inc()
			return listview.Result[T]{}, fmt.Errorf("%w: fetch %s: %w", ErrUnavailable, schema.Entity, err)
		}
		return listview.Apply(records, schema, cfg)
	default:
		return listview.Result[T]{}, fmt.Errorf("%w: unknown pagination mode %q", listview.ErrInvalidConfiguration, mode)
	}
}

// ValidatePage checks the paging fields of a server-side query.
func ValidatePage(q Query) error {
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", listview.ErrInvalidConfiguration, q.Limit)
	}
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", listview.ErrInvalidConfiguration, q.Page)
	}
	return nil
}
