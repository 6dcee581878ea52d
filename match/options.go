package match

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchwell/refdata"
	"github.com/poiesic/matchwell/storage"
)

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size used for re-ranking and presence
// lookups.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPoolSize, size)
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// WithRerankTimeout bounds the whole semantic re-rank batch.
// Default is 5 seconds.
func WithRerankTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidTimeout, d)
		}
		e.rerankTimeout = d
		return nil
	}
}

// WithReferenceData replaces the built-in keyword tables.
func WithReferenceData(ref *refdata.ReferenceData) Option {
	return func(e *Engine) error {
		if ref != nil {
			e.ref = ref
		}
		return nil
	}
}

// WithPresence sets the source of the online flag. Without one every
// candidate is reported offline.
func WithPresence(presence storage.PresenceTracker) Option {
	return func(e *Engine) error {
		e.presence = presence
		return nil
	}
}

// WithDismissals excludes dismissed candidates from recommendations.
func WithDismissals(dismissals storage.DismissalStore) Option {
	return func(e *Engine) error {
		e.dismissals = dismissals
		return nil
	}
}

// WithMonitor sets a Monitor that observes every request.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithMinBioLength sets the shortest bio, in characters, the re-ranker
// will embed. Default is 20.
func WithMinBioLength(n int) Option {
	return func(e *Engine) error {
		if n < 0 {
			n = 0
		}
		e.minBioLength = n
		return nil
	}
}
