package engine

// Get resolves key by checking the transaction stack innermost-to-
// outermost first, then falling back to the version chain bounded by the
// innermost snapshot (inside a transaction) or the latest committed
// version (outside one). Tombstones and absent keys both report
// (_, false).
func (e *Engine) Get(key string) (string, bool) {
	if v, ok := e.stack.lookup(key); ok {
		if isTombstone(v) {
			return "", false
		}
		return v.(string), true
	}

	chain, ok := e.chains[key]
	if !ok {
		return "", false
	}

	if top := e.stack.innermost(); top != nil {
		v, ok := chain.atOrBefore(top.snapshotTS)
		if !ok || isTombstone(v) {
			return "", false
		}
		return v.(string), true
	}

	latest, ok := chain.latest()
	if !ok || isTombstone(latest.payload) {
		return "", false
	}
	return latest.payload.(string), true
}

// GetOr returns Get's value, or fallback if the key is absent. A
// convenience wrapper for callers who want a default in place of a
// (value, ok) pair.
func (e *Engine) GetOr(key, fallback string) string {
	if v, ok := e.Get(key); ok {
		return v
	}
	return fallback
}

// Set assigns value to key. Inside a transaction this writes into the
// innermost overlay; outside one it appends directly to the version
// chain, advancing the clock immediately — writes made outside a
// transaction are never buffered, they commit on the spot.
func (e *Engine) Set(key, value string) {
	if top := e.stack.innermost(); top != nil {
		top.writes[key] = value
		return
	}
	ts := e.clk.advance()
	e.chainFor(key).append(ts, value)
}

// Delete marks key as removed. Inside a transaction this writes a
// tombstone into the innermost overlay; outside one it appends a
// tombstone directly to the version chain.
func (e *Engine) Delete(key string) {
	if top := e.stack.innermost(); top != nil {
		top.writes[key] = deleted
		return
	}
	ts := e.clk.advance()
	e.chainFor(key).append(ts, deleted)
}
