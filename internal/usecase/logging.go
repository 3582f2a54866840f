package usecase

import (
	"io"
	"log/slog"
)

// Option configures the logger of a use case.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger routes use case events to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
