package httpclient

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/newgrf/nch/internal/domain"
)

// Config tunes the client used for wiki page downloads.
type Config struct {
	// Timeout bounds a whole page download: connect, headers and body.
	// A context deadline can still shorten it.
	Timeout time.Duration

	// UserAgent is sent when a PageRequest does not set its own.
	UserAgent string

	DialTimeout     time.Duration
	TLSHandshake    time.Duration
	IdleConnTimeout time.Duration
}

// DefaultConfig derives the client settings from the default source config.
func DefaultConfig() Config {
	return FromSource(domain.DefaultConfig().Source)
}

// FromSource builds the client config for a source section. A non-positive
// timeout falls back to the default one.
func FromSource(src domain.SourceConfig) Config {
	def := domain.DefaultConfig().Source

	timeout := src.Timeout
	if timeout <= 0 {
		timeout = def.Timeout
	}
	ua := strings.TrimSpace(src.UserAgent)
	if ua == "" {
		ua = def.UserAgent
	}

	return Config{
		Timeout:         timeout,
		UserAgent:       ua,
		DialTimeout:     capAt(10*time.Second, timeout),
		TLSHandshake:    capAt(10*time.Second, timeout),
		IdleConnTimeout: 90 * time.Second,
	}
}

// New builds the client. Headers and body share cfg.Timeout; the transport
// sets no shorter response-header limit of its own.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		// Two pages per run, both on the same host.
		MaxIdleConns:        2,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout: cfg.TLSHandshake,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

func capAt(limit, d time.Duration) time.Duration {
	if d > 0 && d < limit {
		return d
	}
	return limit
}
