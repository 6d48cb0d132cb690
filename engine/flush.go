package engine

import "fmt"

// Flush iterates every key in the version chain store and, based on the
// latest entry only, upserts or deletes that key in the durable mirror.
// It deliberately ignores open transactions — their overlays are not yet
// committed and must never reach the mirror. Flush is a no-op if the
// engine has no mirror attached.
func (e *Engine) Flush() error {
	if e.mirror == nil {
		return nil
	}

	upserts := make(map[string]string)
	deletions := make(map[string]struct{})

	for k, chain := range e.chains {
		latest, ok := chain.latest()
		if !ok {
			continue
		}
		if isTombstone(latest.payload) {
			deletions[k] = struct{}{}
		} else {
			upserts[k] = latest.payload.(string)
		}
	}

	if err := e.mirror.Apply(upserts, deletions); err != nil {
		return fmt.Errorf("%w: apply: %w", ErrMirrorIOFailure, err)
	}
	e.logger.Debug("flushed to mirror", "engine_id", e.id, "upserts", len(upserts), "deletions", len(deletions))
	return nil
}
