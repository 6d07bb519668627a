package driver

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for license urgency.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}
