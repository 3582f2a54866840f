package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newgrf/nch/internal/domain"
	"github.com/newgrf/nch/internal/infra/httpclient"
)

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") != "nch/test" {
				http.Error(w, "missing user agent", http.StatusForbidden)
				return
			}
			http.ServeFile(w, r, filepath.Join("testdata", name))
		}
	}
	mux.HandleFunc("/wiki/CargoTypes", serve("cargotypes.html"))
	mux.HandleFunc("/wiki/Action0/Cargos", serve("cargos.html"))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSource_FetchLabelsAndClasses(t *testing.T) {
	srv := fixtureServer(t)
	src := NewSource(domain.SourceConfig{
		LabelsURL:  srv.URL + "/wiki/CargoTypes",
		ClassesURL: srv.URL + "/wiki/Action0/Cargos",
		Timeout:    5 * time.Second,
		UserAgent:  "nch/test",
	})

	labels, err := src.FetchLabels(context.Background())
	if err != nil {
		t.Fatalf("FetchLabels error: %v", err)
	}
	if len(labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(labels))
	}

	rows, err := src.FetchClasses(context.Background())
	if err != nil {
		t.Fatalf("FetchClasses error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 class rows, got %d", len(rows))
	}
}

func TestSource_HTTPErrorIsFetchKind(t *testing.T) {
	srv := fixtureServer(t)
	src := NewSource(domain.SourceConfig{
		LabelsURL: srv.URL + "/wiki/Missing",
		UserAgent: "nch/test",
	})

	_, err := src.FetchLabels(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindFetch) {
		t.Fatalf("expected fetch kind, got %v", err)
	}
}

func TestSource_WithExecutorOverridesConfig(t *testing.T) {
	srv := fixtureServer(t)
	exec := httpclient.NewExecutor(
		httpclient.FromSource(domain.SourceConfig{UserAgent: "nch/test"}),
		httpclient.WithMaxBytes(64),
	)
	src := NewSource(domain.SourceConfig{
		LabelsURL: srv.URL + "/wiki/CargoTypes",
		UserAgent: "ignored/0",
	}, WithExecutor(exec))

	_, err := src.FetchLabels(context.Background())
	if !domain.IsKind(err, domain.KindFetch) || !errors.Is(err, httpclient.ErrPageTooLarge) {
		t.Fatalf("expected the injected size cap to reject the page, got %v", err)
	}
}

func TestSource_Defaults(t *testing.T) {
	src := NewSource(domain.SourceConfig{})
	if src.LabelsURL() != domain.DefaultLabelsURL {
		t.Fatalf("expected default labels url, got %s", src.LabelsURL())
	}
}

func TestFileSource(t *testing.T) {
	labels, err := FileSource{Path: filepath.Join("testdata", "cargotypes.html")}.FetchLabels(context.Background())
	if err != nil {
		t.Fatalf("FetchLabels error: %v", err)
	}
	if len(labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(labels))
	}

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.html")}.FetchLabels(context.Background())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	if _, err := os.Stat(filepath.Join("testdata", "cargos.html")); err != nil {
		t.Fatalf("fixture missing: %v", err)
	}
	rows, err := FileSource{Path: filepath.Join("testdata", "cargos.html")}.FetchClasses(context.Background())
	if err != nil || len(rows) != 4 {
		t.Fatalf("FetchClasses: rows=%d err=%v", len(rows), err)
	}
}
