package usecase

import (
	"context"
	"time"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/ports"
)

// OpenRegistry builds the session registry from the persisted snapshot.
type OpenRegistry struct {
	store ports.SnapshotStore
	opts  options
}

func NewOpenRegistry(store ports.SnapshotStore, opts ...Option) *OpenRegistry {
	return &OpenRegistry{store: store, opts: buildOptions(opts)}
}

// Execute always returns a usable registry. A missing snapshot is normal and
// yields an empty one silently; any other load failure also yields an empty
// registry, and the error is returned for display only.
func (uc *OpenRegistry) Execute(cfg domain.Config) (*domain.Registry, error) {
	reg := domain.NewRegistry(domain.WithIgnoreUnknown(cfg.Labels.IgnoreUnknown))

	snap, err := uc.store.Load()
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			uc.opts.log.Debug("snapshot.load.empty", "path", uc.store.Path())
			return reg, nil
		}
		uc.opts.log.Warn("snapshot.load.fallback", "path", uc.store.Path(), "err", err)
		return reg, err
	}

	reg.Restore(snap)
	uc.opts.log.Info("snapshot.load.ok", "path", uc.store.Path(), "labels", reg.Len())
	return reg, nil
}

// RefreshReport summarizes a successful refresh.
type RefreshReport struct {
	Previous    int
	Labels      int
	RefreshedAt time.Time
	Duration    time.Duration
}

// RefreshLabels fetches the label table, swaps it into the registry and saves
// the new snapshot.
type RefreshLabels struct {
	source ports.LabelSource
	store  ports.SnapshotStore
	opts   options
}

func NewRefreshLabels(source ports.LabelSource, store ports.SnapshotStore, opts ...Option) *RefreshLabels {
	return &RefreshLabels{source: source, store: store, opts: buildOptions(opts)}
}

// Execute leaves reg untouched when the fetch fails. A save failure after a
// successful fetch keeps the new labels in memory and returns the error.
func (uc *RefreshLabels) Execute(ctx context.Context, reg *domain.Registry) (RefreshReport, error) {
	start := time.Now()
	rep := RefreshReport{Previous: reg.Len()}
	uc.opts.log.Info("registry.refresh.start", "labels", rep.Previous)

	err := reg.Refresh(func() ([]domain.RawLabel, error) {
		return uc.source.FetchLabels(ctx)
	})
	rep.Duration = time.Since(start)
	if err != nil {
		uc.opts.log.Error("registry.refresh.failed", "err", err, "duration_ms", rep.Duration.Milliseconds())
		return rep, err
	}

	rep.Labels = reg.Len()
	rep.RefreshedAt = reg.RefreshedAt()
	uc.opts.log.Info("registry.refresh.ok", "labels", rep.Labels, "duration_ms", rep.Duration.Milliseconds())

	if err := uc.store.Save(reg.Snapshot()); err != nil {
		uc.opts.log.Error("snapshot.save.failed", "path", uc.store.Path(), "err", err)
		return rep, err
	}
	return rep, nil
}

// ClearLabels empties the registry and persists the empty snapshot.
type ClearLabels struct {
	store ports.SnapshotStore
	opts  options
}

func NewClearLabels(store ports.SnapshotStore, opts ...Option) *ClearLabels {
	return &ClearLabels{store: store, opts: buildOptions(opts)}
}

func (uc *ClearLabels) Execute(reg *domain.Registry) error {
	prev := reg.Len()
	reg.Clear()
	uc.opts.log.Info("registry.clear", "labels", prev)
	return uc.store.Save(reg.Snapshot())
}

// VerifyClasses compares the built-in class catalog with the published table.
type VerifyClasses struct {
	source ports.ClassSource
	opts   options
}

func NewVerifyClasses(source ports.ClassSource, opts ...Option) *VerifyClasses {
	return &VerifyClasses{source: source, opts: buildOptions(opts)}
}

func (uc *VerifyClasses) Execute(ctx context.Context) ([]domain.ClassDiff, error) {
	rows, err := uc.source.FetchClasses(ctx)
	if err != nil {
		if !domain.IsKind(err, domain.KindFetch) {
			err = domain.NewFetchError("classes.verify", err)
		}
		uc.opts.log.Error("classes.verify.failed", "err", err)
		return nil, err
	}
	diffs := domain.CompareClassTable(rows)
	uc.opts.log.Info("classes.verify.ok", "rows", len(rows), "diffs", len(diffs))
	return diffs, nil
}
