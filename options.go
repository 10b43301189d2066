package pcstgo

import (
	"log/slog"

	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/resource"
)

type options struct {
	logger  *Logger
	metrics MetricsCollector
	limiter *resource.Limiter
}

// Option configures a PCST instance.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring.
// Pass nil to disable metrics.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithResourceLimits bounds concurrent solver invocations and row
// throughput across all queries on this instance.
func WithResourceLimits(cfg resource.Config) Option {
	return func(o *options) {
		o.limiter = resource.NewLimiter(cfg)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// QueryOptions controls one relational solve.
type QueryOptions struct {
	// Root is the external root identifier. The zero Key means auto-select:
	// no lookup happens and the solver runs unrooted.
	Root model.Key

	// NumClusters is the target number of active clusters. Default: 1.
	NumClusters int

	// Pruning names the pruning strategy: "none", "simple", "gw" or
	// "strong". Unrecognized names fall back to "gw".
	Pruning string

	// Verbosity controls log volume only; it never affects results.
	Verbosity int
}

func applyQueryOptions(optFns []func(*QueryOptions)) QueryOptions {
	o := QueryOptions{
		NumClusters: 1,
		Pruning:     "gw",
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
