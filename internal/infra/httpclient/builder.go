package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/newgrf/nch/internal/domain"
)

// PageRequest describes a wiki page fetch.
type PageRequest struct {
	URL       string
	UserAgent string
	Headers   map[string]string
}

// BuildRequest builds a GET request for a wiki page.
func BuildRequest(ctx context.Context, spec PageRequest) (*http.Request, error) {
	raw := strings.TrimSpace(spec.URL)
	if raw == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  domain.ErrInvalidConfig,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	if ua := strings.TrimSpace(spec.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html")
	}

	return req, nil
}
