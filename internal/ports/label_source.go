package ports

import (
	"context"

	"github.com/newgrf/nch/internal/domain"
)

// LabelSource fetches the raw cargo label table (e.g., the wiki CargoTypes page).
type LabelSource interface {
	FetchLabels(ctx context.Context) ([]domain.RawLabel, error)
}
