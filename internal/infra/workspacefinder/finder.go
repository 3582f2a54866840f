package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/ports"
)

// Finder locates an nch workspace root by searching upward for one of its
// markers: nch.yaml, or a .nch state directory left by an earlier run.
type Finder struct {
	Markers []string
	// StopAt ends the search at this directory (inclusive). Empty means the
	// filesystem root.
	StopAt string
}

func NewFinder() *Finder {
	return &Finder{Markers: []string{"nch.yaml", ".nch"}}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	stop := ""
	if f.StopAt != "" {
		stop, _ = filepath.Abs(f.StopAt)
	}

	cur := filepath.Clean(abs)
	for {
		for _, m := range f.Markers {
			if _, err := os.Stat(filepath.Join(cur, m)); err == nil {
				return cur, nil
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur || cur == stop {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Resolve returns the workspace root containing startDir, or startDir itself
// when there is none. nch works without a workspace; the root then only
// hosts the log directory.
func (f *Finder) Resolve(startDir string) (string, bool, error) {
	root, err := f.FindRoot(startDir)
	if err == nil {
		return root, true, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return "", false, err
	}
	abs, absErr := filepath.Abs(startDir)
	if absErr != nil {
		return "", false, &domain.OpError{Op: "workspacefinder.resolve", Kind: domain.KindExecution, Err: absErr}
	}
	return abs, false, nil
}
