package domain

import "time"

const (
	DefaultLabelsURL  = "https://newgrf-specs.tt-wiki.net/wiki/CargoTypes"
	DefaultClassesURL = "https://newgrf-specs.tt-wiki.net/wiki/Action0/Cargos"
)

// Config represents the nch configuration loaded from nch.yaml and the environment.
type Config struct {
	Labels LabelsConfig
	Source SourceConfig
	Paths  PathsConfig
}

type LabelsConfig struct {
	IgnoreUnknown bool
}

type SourceConfig struct {
	LabelsURL  string
	ClassesURL string
	Timeout    time.Duration
	UserAgent  string
}

type PathsConfig struct {
	// CacheFile is where the registry snapshot lives. Empty means the
	// per-user cache directory.
	CacheFile string
	LogsDir   string
}

// DefaultConfig provides sane defaults if nch.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Labels: LabelsConfig{IgnoreUnknown: true},
		Source: SourceConfig{
			LabelsURL:  DefaultLabelsURL,
			ClassesURL: DefaultClassesURL,
			Timeout:    30 * time.Second,
			UserAgent:  "nch",
		},
		Paths: PathsConfig{
			LogsDir: ".nch/logs",
		},
	}
}

// WorkspaceSpec describes where `nch init` writes its files.
type WorkspaceSpec struct {
	Root string
}
