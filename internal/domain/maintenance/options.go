package maintenance

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for urgency and due labels.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}
