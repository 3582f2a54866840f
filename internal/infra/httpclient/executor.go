package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newgrf/nch/internal/domain"
)

// maxPageBytes bounds a single wiki page download.
const maxPageBytes int64 = 8 << 20

// ResponseData captures the response details and duration.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor executes HTTP requests with timing.
type Executor struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// ExecutorOption allows configuring an Executor.
type ExecutorOption func(*Executor)

// WithMaxBytes caps the accepted body size. Larger pages are rejected.
func WithMaxBytes(n int64) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// NewExecutor builds an Executor whose client honors cfg.Timeout.
func NewExecutor(cfg Config, opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:    New(cfg),
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		maxBytes:  maxPageBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes the request and returns response data plus duration.
func (e *Executor) Do(ctx context.Context, req *http.Request) (ResponseData, error) {
	start := time.Now()
	ctxWithTimeout := ctx
	cancel := func() {}
	if e.timeout > 0 {
		ctxWithTimeout, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	resp, err := e.client.Do(req.WithContext(ctxWithTimeout))
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Duration: duration}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return ResponseData{Duration: duration}, err
	}
	if int64(len(body)) > e.maxBytes {
		return ResponseData{Status: resp.StatusCode, Duration: time.Since(start)}, errPageTooLarge(e.maxBytes)
	}

	return ResponseData{
		Status:    resp.StatusCode,
		Headers:   resp.Header.Clone(),
		BodyBytes: body,
		Duration:  time.Since(start),
	}, nil
}

// GetPage fetches a page and returns its body. Transport failures and non-2xx
// statuses are reported as KindFetch errors.
func (e *Executor) GetPage(ctx context.Context, spec PageRequest) ([]byte, error) {
	if strings.TrimSpace(spec.UserAgent) == "" {
		spec.UserAgent = e.userAgent
	}
	req, err := BuildRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	resp, err := e.Do(ctx, req)
	if err != nil {
		oe := domain.NewFetchError("httpclient.get", err)
		oe.Path = spec.URL
		return nil, oe
	}
	if resp.Status < 200 || resp.Status > 299 {
		oe := domain.NewFetchError("httpclient.get", fmt.Errorf("unexpected status %d", resp.Status))
		oe.Path = spec.URL
		return nil, oe
	}
	return resp.BodyBytes, nil
}

// ErrPageTooLarge is returned by Do when a body exceeds the size cap.
var ErrPageTooLarge = errors.New("page exceeds size limit")

func errPageTooLarge(limit int64) error {
	return fmt.Errorf("%w (%d bytes)", ErrPageTooLarge, limit)
}
