package vehicle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
)

// Service handles vehicle list views.
type Service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new vehicle service.
func NewService(source Source, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		source: source,
		logger: logger.With(slog.String("component", "vehicle")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of vehicles for cfg. When the source fails the
// returned view is empty with its Error set, alongside an error wrapping
// recordsource.ErrUnavailable.
func (s *Service) List(ctx context.Context, cfg listview.Config) (*View, error) {
	res, err := recordsource.Load(ctx, s.source, Schema, cfg)
	if err != nil {
		if errors.Is(err, recordsource.ErrUnavailable) {
			s.logger.Warn("vehicle source unavailable", "error", err)
			return listview.FailedView[Vehicle, Row](Schema, cfg, err), err
		}
		return nil, err
	}

	now := s.now()
	return listview.NewView(res, Schema, cfg, func(v Vehicle) Row {
		return NewRow(v, now)
	}), nil
}

// Get retrieves a vehicle with its badges.
func (s *Service) Get(ctx context.Context, id int64) (*Row, error) {
	v, err := s.source.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	row := NewRow(*v, s.now())
	return &row, nil
}

// All returns every vehicle from the source.
func (s *Service) All(ctx context.Context) ([]Vehicle, error) {
	vehicles, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch vehicles: %w", recordsource.ErrUnavailable, err)
	}
	return vehicles, nil
}

// Page returns one raw source page.
func (s *Service) Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[Vehicle], error) {
	if err := recordsource.ValidatePage(q); err != nil {
		return listview.SourcePage[Vehicle]{}, err
	}
	page, err := s.source.FetchPage(ctx, q)
	if err != nil {
		return listview.SourcePage[Vehicle]{}, fmt.Errorf("%w: fetch vehicle page: %w", recordsource.ErrUnavailable, err)
	}
	return page, nil
}

// StatusCounts counts vehicles per status.
func (s *Service) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	vehicles, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return CountStatuses(vehicles), nil
}

// CountStatuses counts vehicles per status, ignoring case.
func CountStatuses(vehicles []Vehicle) *StatusCounts {
	counts := &StatusCounts{Total: len(vehicles)}
	for _, v := range vehicles {
		switch strings.ToLower(strings.TrimSpace(v.Status)) {
		case StatusActive:
			counts.Active++
		case StatusMaintenance:
			counts.Maintenance++
		case StatusInactive:
			counts.Inactive++
		default:
			counts.Other++
		}
	}
	return counts
}
