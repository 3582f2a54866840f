package wiki

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/infra/httpclient"
	"github.com/newgrf/nch/internal/ports"
)

// Source fetches the label and class tables from the NewGRF specs wiki.
type Source struct {
	exec       *httpclient.Executor
	labelsURL  string
	classesURL string
}

type Option func(*Source)

// WithExecutor replaces the HTTP executor built from the config.
func WithExecutor(exec *httpclient.Executor) Option {
	return func(s *Source) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// NewSource builds a wiki source from the source section of the config.
func NewSource(cfg domain.SourceConfig, opts ...Option) *Source {
	def := domain.DefaultConfig().Source
	s := &Source{
		labelsURL:  firstNonEmpty(cfg.LabelsURL, def.LabelsURL),
		classesURL: firstNonEmpty(cfg.ClassesURL, def.ClassesURL),
		exec:       httpclient.NewExecutor(httpclient.FromSource(cfg)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.LabelSource = (*Source)(nil)
	_ ports.ClassSource = (*Source)(nil)
)

func (s *Source) FetchLabels(ctx context.Context) ([]domain.RawLabel, error) {
	body, err := s.exec.GetPage(ctx, httpclient.PageRequest{URL: s.labelsURL})
	if err != nil {
		return nil, err
	}
	return ParseLabels(bytes.NewReader(body))
}

func (s *Source) FetchClasses(ctx context.Context) ([]domain.ClassRow, error) {
	body, err := s.exec.GetPage(ctx, httpclient.PageRequest{URL: s.classesURL})
	if err != nil {
		return nil, err
	}
	return ParseClassTable(bytes.NewReader(body))
}

// LabelsURL is where FetchLabels reads from.
func (s *Source) LabelsURL() string { return s.labelsURL }

// FileSource reads a saved copy of a wiki page instead of going online.
type FileSource struct {
	Path string
}

var (
	_ ports.LabelSource = FileSource{}
	_ ports.ClassSource = FileSource{}
)

func (f FileSource) FetchLabels(ctx context.Context) ([]domain.RawLabel, error) {
	body, err := f.read(ctx)
	if err != nil {
		return nil, err
	}
	return ParseLabels(bytes.NewReader(body))
}

func (f FileSource) FetchClasses(ctx context.Context) ([]domain.ClassRow, error) {
	body, err := f.read(ctx)
	if err != nil {
		return nil, err
	}
	return ParseClassTable(bytes.NewReader(body))
}

func (f FileSource) read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		kind := domain.KindFetch
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "wiki.readfile", Kind: kind, Path: f.Path, Err: err}
	}
	return b, nil
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
