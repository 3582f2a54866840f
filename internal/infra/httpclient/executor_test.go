package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newgrf/nch/internal/domain"
)

func TestExecutorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor(FromSource(domain.SourceConfig{Timeout: 20 * time.Millisecond}))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := exec.Do(context.Background(), req)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if resp.Duration <= 0 {
		t.Fatalf("expected duration to be set")
	}
}

func TestFromSource_ClientHonorsConfiguredTimeout(t *testing.T) {
	cfg := FromSource(domain.SourceConfig{Timeout: 60 * time.Second})
	client := New(cfg)

	if client.Timeout != 60*time.Second {
		t.Fatalf("expected client timeout 60s, got %s", client.Timeout)
	}
	tr, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport %T", client.Transport)
	}
	if tr.ResponseHeaderTimeout != 0 {
		t.Fatalf("expected no separate header timeout, got %s", tr.ResponseHeaderTimeout)
	}
}

func TestFromSource_Defaults(t *testing.T) {
	cfg := FromSource(domain.SourceConfig{})
	def := domain.DefaultConfig().Source

	if cfg.Timeout != def.Timeout || cfg.UserAgent != def.UserAgent {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.DialTimeout > cfg.Timeout {
		t.Fatalf("dial timeout %s exceeds total %s", cfg.DialTimeout, cfg.Timeout)
	}
}

// A reply slower than the old fixed transport limits still succeeds when the
// configured timeout allows it.
func TestGetPage_SlowHeadersWithinConfiguredTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	exec := NewExecutor(FromSource(domain.SourceConfig{Timeout: 2 * time.Second}))
	body, err := exec.GetPage(context.Background(), PageRequest{URL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<table></table>" {
		t.Fatalf("unexpected body %q", body)
	}

	short := NewExecutor(FromSource(domain.SourceConfig{Timeout: 50 * time.Millisecond}))
	if _, err := short.GetPage(context.Background(), PageRequest{URL: server.URL}); !domain.IsKind(err, domain.KindFetch) {
		t.Fatalf("expected fetch error for a timeout shorter than the reply, got %v", err)
	}
}

func TestGetPageReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	body, err := NewExecutor(DefaultConfig()).GetPage(context.Background(), PageRequest{URL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<table></table>" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestGetPage_DefaultUserAgentFromConfig(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	exec := NewExecutor(FromSource(domain.SourceConfig{UserAgent: "nch/1.2"}))
	if _, err := exec.GetPage(context.Background(), PageRequest{URL: server.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "nch/1.2" {
		t.Fatalf("expected configured user agent, got %q", got)
	}
}

func TestGetPage_OversizedBodyIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 65)))
	}))
	defer server.Close()

	exec := NewExecutor(DefaultConfig(), WithMaxBytes(64))
	_, err := exec.GetPage(context.Background(), PageRequest{URL: server.URL})
	if !domain.IsKind(err, domain.KindFetch) || !errors.Is(err, ErrPageTooLarge) {
		t.Fatalf("expected fetch error for oversized page, got %v", err)
	}

	exact := NewExecutor(DefaultConfig(), WithMaxBytes(65))
	body, err := exact.GetPage(context.Background(), PageRequest{URL: server.URL})
	if err != nil || len(body) != 65 {
		t.Fatalf("expected a body at the limit to pass, got %d bytes, err %v", len(body), err)
	}
}

func TestGetPageNon2xxIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewExecutor(DefaultConfig()).GetPage(context.Background(), PageRequest{URL: server.URL})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindFetch) || !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
