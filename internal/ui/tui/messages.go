package tui

import (
	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/usecase"
)

type refreshDoneMsg struct {
	report usecase.RefreshReport
	// snap is nil when the fetch itself failed.
	snap *domain.RegistrySnapshot
	err  error
}

type copyDoneMsg struct {
	format string
	err    error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}
