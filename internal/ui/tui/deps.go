package tui

import (
	"log/slog"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/ports"
	"github.com/newgrf/nch/internal/usecase"
)

type Deps struct {
	Registry *domain.Registry
	// LoadErr is set when the cached snapshot could not be read. The
	// registry is then empty.
	LoadErr error

	Refresh   *usecase.RefreshLabels
	Clear     *usecase.ClearLabels
	Clipboard ports.Clipboard

	WorkspaceRoot        string
	WorkspaceFound       bool
	WorkspaceInitializer ports.WorkspaceInitializer

	Logger *slog.Logger
}
