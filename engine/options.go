package engine

import (
	"log/slog"
	"os"
)

// Mirror is the durable backing store contract. The engine treats it as
// an opaque key->value sink; concrete implementations live in the
// sibling mirror package.
type Mirror interface {
	// LoadAll returns every currently persisted (key, value) pair. Order
	// is unspecified; the engine assigns timestamps in iteration order.
	LoadAll() (map[string]string, error)

	// Apply atomically applies a batch of upserts and deletions.
	Apply(upserts map[string]string, deletions map[string]struct{}) error

	// Close releases the backing resource. Subsequent Apply calls become
	// no-ops.
	Close() error
}

type config struct {
	logger *slog.Logger
	mirror Mirror
	seed   map[string]string
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithLogger installs a custom *slog.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMirror attaches a durable backing store. Absent this option the
// engine is purely in-memory.
func WithMirror(m Mirror) Option {
	return func(c *config) { c.mirror = m }
}

// WithSeed supplies construction-time seed data, applied after the mirror
// load completes.
func WithSeed(initial map[string]string) Option {
	return func(c *config) { c.seed = initial }
}
