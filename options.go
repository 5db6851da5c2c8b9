package pljava

import (
	"log/slog"

	"github.com/Sednai/pljava/invoke"
	"github.com/Sednai/pljava/types"
)

type options struct {
	logger      *Logger
	chunkSize   int
	memoryLimit int64
	growthLimit int64
	rows        types.RowBridge
	sets        types.SetBridge
	triggers    invoke.TriggerBridge
}

// Option configures Bridge constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for bind and call operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pljava.NewJSONLogger(slog.LevelInfo)
//	b, _ := pljava.New(cat, rt, pljava.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithChunkSize configures the chunk size of the call memory regions.
// The value is rounded up to a power of two.
func WithChunkSize(size int) Option {
	return func(o *options) {
		o.chunkSize = size
	}
}

// WithMemoryLimit bounds region memory: limit is the total budget in
// bytes, growthPerSec throttles how fast the regions may grow. Zero
// growthPerSec leaves growth unthrottled.
func WithMemoryLimit(limit, growthPerSec int64) Option {
	return func(o *options) {
		o.memoryLimit = limit
		o.growthLimit = growthPerSec
	}
}

// WithRowBridge configures the collaborator that wraps composite values
// in managed row accessors. Required for routines with composite
// parameters or results.
func WithRowBridge(rows types.RowBridge) Option {
	return func(o *options) {
		o.rows = rows
	}
}

// WithSetBridge configures the collaborator that consumes result-set
// providers returned by set-returning routines.
func WithSetBridge(sets types.SetBridge) Option {
	return func(o *options) {
		o.sets = sets
	}
}

// WithTriggerBridge configures the collaborator that builds trigger
// context values and extracts trigger result rows. Required for
// CallTrigger.
func WithTriggerBridge(triggers invoke.TriggerBridge) Option {
	return func(o *options) {
		o.triggers = triggers
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:    NoopLogger(),
		chunkSize: defaultChunkSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
