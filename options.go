package historied

import (
	"go.uber.org/zap"

	"github.com/jiangjkd/historied/internal/options"
)

type overlayOptions struct {
	logger       *zap.Logger
	eagerPruning bool
	keyPrefix    string
}

func defaultOverlayOptions() overlayOptions {
	return overlayOptions{
		logger:       zap.NewNop(),
		eagerPruning: false,
		keyPrefix:    "",
	}
}

// Option configures an Overlay.
type Option = options.OptionCallback[overlayOptions]

// WithLogger sets the logger transaction boundaries, compaction and flushes
// are reported to. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *overlayOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithEagerPruning makes Compact drop every value that is older than the
// newest committed one. Pruned values cannot be restored by
// Overlay.UncheckedRollbackCommitted.
func WithEagerPruning() Option {
	return func(opts *overlayOptions) {
		opts.eagerPruning = true
	}
}

// WithKeyPrefix prepends prefix to every key written by Flush and hashed by
// Digest. Keys inside the overlay are not affected.
func WithKeyPrefix(prefix string) Option {
	return func(opts *overlayOptions) {
		opts.keyPrefix = prefix
	}
}
