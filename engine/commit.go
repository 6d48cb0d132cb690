package engine

// Begin pushes a new transaction frame, capturing the clock's current
// value as the frame's snapshot timestamp. Everything committed after this
// point stays invisible to the new transaction's reads.
func (e *Engine) Begin() {
	e.stack.push(e.clk.current())
}

// Commit pops the innermost frame. If the stack is still non-empty
// afterward, this is a nested commit: the popped overlay merges into the
// new innermost overlay with last-write-wins and no conflict check. A
// nested commit only makes its writes visible to the parent transaction,
// not to the rest of the world, so there is nothing yet to validate
// against concurrent committers — that check happens once, when the
// outermost frame commits.
//
// If the stack becomes empty, this is the outer commit: every key in the
// popped overlay is checked against the version chain's latest committed
// entry. If any such entry has a timestamp strictly greater than the
// transaction's snapshot, some other committer won the race on that key
// first, so the whole commit fails with a *WriteConflictError naming the
// first offending key, and the overlay stays discarded rather than
// re-pushed — there's no partial commit to retry into. Otherwise every
// entry is appended to its chain, advancing the clock once per entry.
func (e *Engine) Commit() error {
	if e.stack.depth() == 0 {
		return ErrNoActiveTransaction
	}

	top := e.stack.pop()

	if parent := e.stack.innermost(); parent != nil {
		mergeInto(top.writes, parent.writes)
		return nil
	}

	for key := range top.writes {
		if latest, ok := e.chains[key].latestOrZero(); ok && latest.ts > top.snapshotTS {
			return &WriteConflictError{Key: key}
		}
	}

	for key, value := range top.writes {
		ts := e.clk.advance()
		e.chainFor(key).append(ts, value)
	}
	return nil
}

// Rollback pops and discards the innermost frame.
func (e *Engine) Rollback() error {
	if e.stack.depth() == 0 {
		return ErrNoActiveTransaction
	}
	e.stack.pop()
	return nil
}

// latestOrZero is latest() guarded against a nil chain (a key that was
// only ever written inside the transaction currently committing has no
// chain yet).
func (c *versionChain) latestOrZero() (versionEntry, bool) {
	if c == nil {
		return versionEntry{}, false
	}
	return c.latest()
}
