package driver

import (
	"context"

	"github.com/rpggio/fleetview/internal/recordsource"
)

// Source supplies drivers.
type Source interface {
	recordsource.Source[Driver]
	Get(ctx context.Context, id int64) (*Driver, error)
}
