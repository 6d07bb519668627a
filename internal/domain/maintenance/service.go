package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
)

// Service handles maintenance list views and the service schedule.
type Service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new maintenance service.
func NewService(source Source, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		source: source,
		logger: logger.With(slog.String("component", "maintenance")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of maintenance records for cfg.
func (s *Service) List(ctx context.Context, cfg listview.Config) (*View, error) {
	res, err := recordsource.Load(ctx, s.source, Schema, cfg)
	if err != nil {
		if errors.Is(err, recordsource.ErrUnavailable) {
			s.logger.Warn("maintenance source unavailable", "error", err)
			return listview.FailedView[Record, Row](Schema, cfg, err), err
		}
		return nil, err
	}

	now := s.now()
	return listview.NewView(res, Schema, cfg, func(r Record) Row {
		return NewRow(r, now)
	}), nil
}

// Get returns one maintenance record by ID with its badges.
func (s *Service) Get(ctx context.Context, id int64) (*Row, error) {
	r, err := s.source.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get maintenance record %d: %w", id, err)
	}
	row := NewRow(*r, s.now())
	return &row, nil
}

// All returns every maintenance record from the source.
func (s *Service) All(ctx context.Context) ([]Record, error) {
	records, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch maintenance records: %w", recordsource.ErrUnavailable, err)
	}
	return records, nil
}

// Page fetches one server-side page of records exactly as the source returns it.
func (s *Service) Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[Record], error) {
	if err := recordsource.ValidatePage(q); err != nil {
		return listview.SourcePage[Record]{}, err
	}
	page, err := s.source.FetchPage(ctx, q)
	if err != nil {
		return listview.SourcePage[Record]{}, fmt.Errorf("%w: fetch maintenance page: %w", recordsource.ErrUnavailable, err)
	}
	return page, nil
}

// Upcoming returns up to limit scheduled records, soonest first. Records with
// unparseable dates come last.
func (s *Service) Upcoming(ctx context.Context, limit int) ([]Upcoming, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Schedule(records, s.now(), limit), nil
}

// Scheduled returns the records whose status is scheduled, in their original
// order. Status matching ignores case and surrounding blanks.
func Scheduled(records []Record) []Record {
	return listview.FilterStatus(records, Schema, listview.Config{}.WithStatus(StatusScheduled))
}

// Schedule picks the scheduled records from records ordered by date.
func Schedule(records []Record, now time.Time, limit int) []Upcoming {
	sorted := listview.Sort(Scheduled(records), Schema, "date", listview.Ascending)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]Upcoming, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, newUpcoming(r, now))
	}
	return out
}
