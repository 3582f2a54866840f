package snapshotstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/ports"
)

// FormatVersion is written into every snapshot; files with another version
// are rejected as corrupt.
const FormatVersion = 1

const defaultFileName = "registry.json"

type fileLabel struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Bitmask     uint16   `json:"bitmask"`
	Industries  []string `json:"industries"`
	// Classes is informational; associations are recomputed on load.
	Classes []string `json:"classes"`
}

type fileSnapshot struct {
	Version       int         `json:"version"`
	RefreshedAt   *time.Time  `json:"refreshed_at,omitempty"`
	IgnoreUnknown bool        `json:"ignore_unknown"`
	Labels        []fileLabel `json:"labels"`
}

type JSONStore struct {
	path string
}

// NewJSONStore stores the snapshot at cfg.Paths.CacheFile, or in the user
// cache directory when that is empty.
func NewJSONStore(cfg domain.Config) *JSONStore {
	path := strings.TrimSpace(cfg.Paths.CacheFile)
	if path == "" {
		path = DefaultPath()
	}
	return &JSONStore{path: path}
}

// DefaultPath is <user cache dir>/nch/registry.json, falling back to the
// temp dir when no cache dir is known.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "nch", defaultFileName)
}

var _ ports.SnapshotStore = (*JSONStore)(nil)

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Save(snap domain.RegistrySnapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "snapshotstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	b, err := json.MarshalIndent(toFile(snap), "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "snapshotstore.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "snapshotstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "snapshotstore.rename",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	return nil
}

func (s *JSONStore) Load() (domain.RegistrySnapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.RegistrySnapshot{}, &domain.OpError{
				Op:   "snapshotstore.load",
				Kind: domain.KindNotFound,
				Path: s.path,
				Err:  domain.ErrNotFound,
			}
		}
		return domain.RegistrySnapshot{}, &domain.OpError{
			Op:   "snapshotstore.load",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	var fs fileSnapshot
	if err := json.Unmarshal(b, &fs); err != nil {
		return domain.RegistrySnapshot{}, corrupt(s.path, err)
	}
	if fs.Version != FormatVersion {
		return domain.RegistrySnapshot{}, corrupt(s.path, fmt.Errorf("unsupported version %d", fs.Version))
	}
	return fromFile(fs), nil
}

// ReadRaw returns the snapshot file bytes as stored.
func (s *JSONStore) ReadRaw() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "snapshotstore.read", Kind: kind, Path: s.path, Err: err}
	}
	return b, nil
}

func corrupt(path string, err error) error {
	return &domain.OpError{
		Op:   "snapshotstore.load",
		Kind: domain.KindCorruptSnapshot,
		Path: path,
		Err:  fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err),
	}
}

func toFile(snap domain.RegistrySnapshot) fileSnapshot {
	fs := fileSnapshot{
		Version:       FormatVersion,
		IgnoreUnknown: snap.IgnoreUnknown,
		Labels:        make([]fileLabel, 0, len(snap.Labels)),
	}
	if !snap.RefreshedAt.IsZero() {
		t := snap.RefreshedAt.UTC()
		fs.RefreshedAt = &t
	}
	for _, lb := range snap.Labels {
		industries := lb.Industries
		if industries == nil {
			industries = []string{}
		}
		fs.Labels = append(fs.Labels, fileLabel{
			Code:        lb.Code,
			Description: lb.Description,
			Bitmask:     lb.Bitmask,
			Industries:  industries,
			Classes:     domain.ClassesFromMask(lb.Bitmask).NMLNames(),
		})
	}
	return fs
}

func fromFile(fs fileSnapshot) domain.RegistrySnapshot {
	snap := domain.RegistrySnapshot{
		IgnoreUnknown: fs.IgnoreUnknown,
		Labels:        make([]domain.CargoLabel, 0, len(fs.Labels)),
	}
	if fs.RefreshedAt != nil {
		snap.RefreshedAt = fs.RefreshedAt.UTC()
	}
	for _, fl := range fs.Labels {
		snap.Labels = append(snap.Labels, domain.CargoLabel{
			Code:        fl.Code,
			Description: fl.Description,
			Bitmask:     fl.Bitmask,
			Industries:  fl.Industries,
		})
	}
	return snap
}
