package maintenance

import (
	"context"

	"github.com/rpggio/fleetview/internal/recordsource"
)

// Source supplies maintenance records.
type Source interface {
	recordsource.Source[Record]
	Get(ctx context.Context, id int64) (*Record, error)
}
