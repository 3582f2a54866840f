package ports

import (
	"context"

	"github.com/newgrf/nch/internal/domain"
)

// ClassSource fetches the published cargo class table. It is only used to
// verify the built-in catalog.
type ClassSource interface {
	FetchClasses(ctx context.Context) ([]domain.ClassRow, error)
}
