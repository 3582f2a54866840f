package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/infra/config"
	"github.com/newgrf/nch/internal/infra/logger"
	"github.com/newgrf/nch/internal/infra/snapshotstore"
	"github.com/newgrf/nch/internal/infra/wiki"
	"github.com/newgrf/nch/internal/infra/workspacefinder"
	"github.com/newgrf/nch/internal/ports"
	"github.com/newgrf/nch/internal/usecase"
)

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	store  *snapshotstore.JSONStore
	source *wiki.Source
	log    *slog.Logger

	closeLog func() error
}

// loadWorkspace resolves the workspace (optional), loads the config and
// starts the file logger. Without a workspace, logs go next to the snapshot
// so the current directory is left alone.
func loadWorkspace(workspaceFlag string, debug bool) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfgRoot := ""
	if found {
		cfgRoot = root
	}
	cfg, err := config.Load(cfgRoot)
	if err != nil {
		return nil, err
	}

	store := snapshotstore.NewJSONStore(cfg)

	logCfg := logger.Config{Root: root, Dir: cfg.Paths.LogsDir, Debug: debug}
	if !found {
		logCfg = logger.Config{Root: filepath.Dir(store.Path()), Dir: "logs", Debug: debug}
	}
	cleanup, logErr := logger.Setup(logCfg)
	if cleanup == nil {
		cleanup = func() error { return nil }
	}

	ws := &workspaceCtx{
		root:     root,
		found:    found,
		cfg:      cfg,
		store:    store,
		source:   wiki.NewSource(cfg.Source),
		log:      logger.L(),
		closeLog: cleanup,
	}
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", logErr)
	}
	return ws, nil
}

func (ws *workspaceCtx) Close() {
	if ws != nil && ws.closeLog != nil {
		_ = ws.closeLog()
	}
}

// openRegistry loads the persisted registry. A corrupt snapshot is reported
// on stderr and treated as empty.
func (ws *workspaceCtx) openRegistry() *domain.Registry {
	reg, err := usecase.NewOpenRegistry(ws.store, usecase.WithLogger(ws.log)).Execute(ws.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring cached labels (%v)\n", err)
	}
	return reg
}

// labelSource returns the wiki, or a saved page when fromFile is set.
func (ws *workspaceCtx) labelSource(fromFile string) ports.LabelSource {
	if p := strings.TrimSpace(fromFile); p != "" {
		return wiki.FileSource{Path: p}
	}
	return ws.source
}

func (ws *workspaceCtx) classSource(fromFile string) ports.ClassSource {
	if p := strings.TrimSpace(fromFile); p != "" {
		return wiki.FileSource{Path: p}
	}
	return ws.source
}

func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	return workspacefinder.NewFinder().Resolve(wd)
}

// parseClassArgs resolves class names given on the command line. Each value
// may itself be a comma separated list.
func parseClassArgs(values []string) ([]domain.ClassBit, error) {
	var out []domain.ClassBit
	seen := map[domain.ClassBit]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, err := domain.ParseClass(part)
			if err != nil {
				return nil, err
			}
			if !seen[c.Value] {
				seen[c.Value] = true
				out = append(out, c.Value)
			}
		}
	}
	return out, nil
}

// parseLabelArgs normalizes label codes: upper case, trimmed, comma split.
func parseLabelArgs(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
				out = append(out, code)
			}
		}
	}
	return out
}
