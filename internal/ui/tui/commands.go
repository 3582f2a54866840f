package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/usecase/export"
)

const refreshTimeout = 2 * time.Minute

// cmdRefresh fetches into a private copy of the registry. The live registry
// is only touched from Update, when refreshDoneMsg arrives.
func cmdRefresh(ctx context.Context, deps Deps, snap domain.RegistrySnapshot, ignoreUnknown bool) tea.Cmd {
	return func() tea.Msg {
		if deps.Refresh == nil {
			return refreshDoneMsg{err: errors.New("refresh is not configured")}
		}

		work := domain.NewRegistry(domain.WithIgnoreUnknown(ignoreUnknown))
		work.Restore(snap)
		before := work.RefreshedAt()

		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		rep, err := deps.Refresh.Execute(ctx, work)
		msg := refreshDoneMsg{report: rep, err: err}
		if !work.RefreshedAt().Equal(before) {
			fresh := work.Snapshot()
			msg.snap = &fresh
		}
		return msg
	}
}

func cmdCopy(deps Deps, format string, refit export.Refit) tea.Cmd {
	return func() tea.Msg {
		if deps.Clipboard == nil {
			return copyDoneMsg{format: format, err: errors.New("clipboard is not configured")}
		}
		text, err := refit.Render(format)
		if err != nil {
			return copyDoneMsg{format: format, err: err}
		}
		return copyDoneMsg{format: format, err: deps.Clipboard.WriteText(text)}
	}
}

func cmdInitWorkspace(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}
