package dashboard

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to decide which services are upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}
