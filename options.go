package evbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrorPolicy decides what Fire does when a handler returns an error.
type ErrorPolicy int

const (
	// StopOnError aborts the remaining handlers and returns the first error
	// unmodified. This is the default.
	StopOnError ErrorPolicy = iota
	// ContinueOnError runs every handler and returns all of their errors
	// combined.
	ContinueOnError
)

func (p ErrorPolicy) String() string {
	switch p {
	case StopOnError:
		return "stop"
	case ContinueOnError:
		return "continue"
	}
	return "unknown"
}

// Option configures a Bus built by New.
type Option func(*Bus)

// WithLogger sets the logger used for debug tracing. A nil logger is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithErrorPolicy sets how Fire treats handler errors. The default is
// StopOnError.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(b *Bus) {
		b.policy = policy
	}
}

// WithMetrics registers the bus collectors with reg. Registration errors,
// including duplicate registration, panic like prometheus.MustRegister.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(b *Bus) {
		if reg == nil {
			return
		}
		m := newMetrics()
		reg.MustRegister(m.collectors()...)
		b.metrics = m
	}
}
