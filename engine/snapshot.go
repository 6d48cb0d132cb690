package engine

// Snapshot materializes the logical view a reader would see right now.
// It starts from the committed-state projection — bounded by the
// innermost snapshot timestamp inside a transaction, or simply the
// latest committed version outside one — then overlays every txFrame from
// outermost to innermost, with tombstones removing keys and plain values
// overwriting them.
func (e *Engine) Snapshot() map[string]string {
	result := make(map[string]string, len(e.chains))

	if top := e.stack.innermost(); top != nil {
		snapTS := top.snapshotTS
		for k, chain := range e.chains {
			if v, ok := chain.atOrBefore(snapTS); ok && !isTombstone(v) {
				result[k] = v.(string)
			}
		}
	} else {
		for k, chain := range e.chains {
			latest, ok := chain.latest()
			if ok && !isTombstone(latest.payload) {
				result[k] = latest.payload.(string)
			}
		}
	}

	for _, frame := range e.stack.frames {
		for k, v := range frame.writes {
			if isTombstone(v) {
				delete(result, k)
			} else {
				result[k] = v.(string)
			}
		}
	}

	return result
}
