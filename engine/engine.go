package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Engine is an in-memory multi-version key-value store: a logical clock,
// per-key version chains, a stack of nested transaction overlays, and an
// optional durable mirror.
//
// Engine is single-threaded and cooperative: it performs no internal
// locking of its own. Callers driving the engine from multiple goroutines
// must serialize access with their own mutex.
type Engine struct {
	id uuid.UUID

	clk    clock
	chains map[string]*versionChain
	stack  txStack

	mirror Mirror
	logger *slog.Logger
}

// New constructs an Engine. If a Mirror was supplied via WithMirror, its
// rows are loaded first (each advancing the clock by one); any seed
// supplied via WithSeed is then loaded the same way.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	e := &Engine{
		id:     uuid.New(),
		chains: make(map[string]*versionChain),
		mirror: cfg.mirror,
		logger: cfg.logger,
	}

	if cfg.mirror != nil {
		rows, err := cfg.mirror.LoadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: load_all: %w", ErrMirrorIOFailure, err)
		}
		e.loadRows(rows)
		e.logger.Info("loaded rows from mirror", "engine_id", e.id, "rows", len(rows))
	}

	if len(cfg.seed) > 0 {
		e.loadRows(cfg.seed)
		e.logger.Info("applied construction-time seed", "engine_id", e.id, "rows", len(cfg.seed))
	}

	return e, nil
}

// loadRows appends each row to that key's chain (creating the chain if
// needed), advancing the clock once per row. Iteration order over the map is
// unspecified, but every key still gets its own unique timestamp.
func (e *Engine) loadRows(rows map[string]string) {
	for k, v := range rows {
		ts := e.clk.advance()
		e.chainFor(k).append(ts, v)
	}
}

// chainFor returns the chain for key, creating it lazily on first write.
func (e *Engine) chainFor(key string) *versionChain {
	c, ok := e.chains[key]
	if !ok {
		c = &versionChain{}
		e.chains[key] = c
	}
	return c
}

// InTransaction reports whether a transaction is currently open.
func (e *Engine) InTransaction() bool {
	return e.stack.depth() > 0
}

// Close releases the engine's durable mirror, if any. Subsequent Flush
// calls become no-ops, matching the mirror's own Close contract.
func (e *Engine) Close() error {
	if e.mirror == nil {
		return nil
	}
	if err := e.mirror.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrMirrorIOFailure, err)
	}
	return nil
}

// String implements fmt.Stringer, reporting key count, clock value, and
// transaction depth for logging and debugging.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine(id=%s, keys=%d, clock=%d, tx_depth=%d)",
		e.id, len(e.chains), e.clk.current(), e.stack.depth())
}
