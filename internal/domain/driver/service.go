package driver

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

// Service handles driver list views.
type Service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new driver service.
func NewService(source Source, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		source: source,
		logger: logger.With(slog.String("component", "driver")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of drivers for cfg.
func (s *Service) List(ctx context.Context, cfg listview.Config) (*View, error) {
	res, err := recordsource.Load(ctx, s.source, Schema, cfg)
	if err != nil {
		if errors.Is(err, recordsource.ErrUnavailable) {
			s.logger.Warn("driver source unavailable", "error", err)
			return listview.FailedView[Driver, Row](Schema, cfg, err), err
		}
		return nil, err
	}

	now := s.now()
	return listview.NewView(res, Schema, cfg, func(d Driver) Row {
		return NewRow(d, now)
	}), nil
}

// Get retrieves a driver with its badges.
func (s *Service) Get(ctx context.Context, id int64) (*Row, error) {
	d, err := s.source.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	row := NewRow(*d, s.now())
	return &row, nil
}

// All returns every driver from the source.
func (s *Service) All(ctx context.Context) ([]Driver, error) {
	drivers, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch drivers: %w", recordsource.ErrUnavailable, err)
	}
	return drivers, nil
}

// Page returns one raw source page.
func (s *Service) Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[Driver], error) {
	if err := recordsource.ValidatePage(q); err != nil {
		return listview.SourcePage[Driver]{}, err
	}
	page, err := s.source.FetchPage(ctx, q)
	if err != nil {
		return listview.SourcePage[Driver]{}, fmt.Errorf("%w: fetch driver page: %w", recordsource.ErrUnavailable, err)
	}
	return page, nil
}

// CountAvailable counts drivers free to take a trip.
func CountAvailable(drivers []Driver) int {
	n := 0
	for _, d := range drivers {
		if strings.EqualFold(strings.TrimSpace(d.Status), StatusAvailable) {
			n++
		}
	}
	return n
}
