package ports

import "github.com/newgrf/nch/internal/domain"

// SnapshotStore persists the registry label set between sessions.
type SnapshotStore interface {
	Save(snap domain.RegistrySnapshot) error
	// Load returns a KindNotFound error when nothing was saved yet.
	Load() (domain.RegistrySnapshot, error)
	Path() string
}
