package vehicle

import (
	"context"

	"github.com/rpggio/fleetview/internal/recordsource"
)

// Source supplies vehicles.
type Source interface {
	recordsource.Source[Vehicle]
	Get(ctx context.Context, id int64) (*Vehicle, error)
}
