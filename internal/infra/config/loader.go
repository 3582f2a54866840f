package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/newgrf/nch/internal/domain"
)

const (
	FileName = "nch.yaml"
	EnvFile  = ".env"
)

// Environment variables that override nch.yaml.
const (
	EnvLabelsURL     = "NCH_LABELS_URL"
	EnvClassesURL    = "NCH_CLASSES_URL"
	EnvCacheFile     = "NCH_CACHE_FILE"
	EnvIgnoreUnknown = "NCH_IGNORE_UNKNOWN_LABELS"
	EnvHTTPTimeout   = "NCH_HTTP_TIMEOUT"
)

// Load builds the effective config: defaults, then nch.yaml in root, then
// environment overrides. Variables from root/.env apply only where the real
// environment does not set them. An empty root skips both files.
func Load(root string) (domain.Config, error) {
	return load(root, os.LookupEnv)
}

func load(root string, lookup func(string) (string, bool)) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	dotenv := map[string]string{}
	if strings.TrimSpace(root) != "" {
		if err := applyFile(&cfg, filepath.Join(root, FileName)); err != nil {
			return cfg, err
		}

		envPath := filepath.Join(root, EnvFile)
		m, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, &domain.OpError{
				Op:   "config.load_dotenv",
				Kind: domain.KindInvalidConfig,
				Path: envPath,
				Err:  err,
			}
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, get); err != nil {
		return cfg, err
	}

	if p := cfg.Paths.CacheFile; p != "" && !filepath.IsAbs(p) && root != "" {
		cfg.Paths.CacheFile = filepath.Join(root, p)
	}
	return cfg, nil
}

func applyFile(cfg *domain.Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var y YAMLConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	n := y.NCH
	if n.Labels.IgnoreUnknown != nil {
		cfg.Labels.IgnoreUnknown = *n.Labels.IgnoreUnknown
	}
	if n.Source.LabelsURL != "" {
		cfg.Source.LabelsURL = n.Source.LabelsURL
	}
	if n.Source.ClassesURL != "" {
		cfg.Source.ClassesURL = n.Source.ClassesURL
	}
	if n.Source.UserAgent != "" {
		cfg.Source.UserAgent = n.Source.UserAgent
	}
	if n.Source.Timeout != "" {
		d, err := parseTimeout(n.Source.Timeout)
		if err != nil {
			return &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("nch.source.timeout: %w", err),
			}
		}
		cfg.Source.Timeout = d
	}
	if n.Paths.CacheFile != "" {
		cfg.Paths.CacheFile = n.Paths.CacheFile
	}
	if n.Paths.LogsDir != "" {
		cfg.Paths.LogsDir = n.Paths.LogsDir
	}
	return nil
}

func applyEnv(cfg *domain.Config, get func(string) (string, bool)) error {
	if v, ok := get(EnvLabelsURL); ok && strings.TrimSpace(v) != "" {
		cfg.Source.LabelsURL = strings.TrimSpace(v)
	}
	if v, ok := get(EnvClassesURL); ok && strings.TrimSpace(v) != "" {
		cfg.Source.ClassesURL = strings.TrimSpace(v)
	}
	if v, ok := get(EnvCacheFile); ok && strings.TrimSpace(v) != "" {
		cfg.Paths.CacheFile = strings.TrimSpace(v)
	}
	if v, ok := get(EnvIgnoreUnknown); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvIgnoreUnknown, err)
		}
		cfg.Labels.IgnoreUnknown = b
	}
	if v, ok := get(EnvHTTPTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return envError(EnvHTTPTimeout, err)
		}
		cfg.Source.Timeout = d
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

func envError(key string, err error) error {
	return &domain.OpError{
		Op:   "config.env",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", key, err),
	}
}
