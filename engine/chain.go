package engine

// tombstone is the internal marker for a deleted key. It never escapes a
// read: any resolution that lands on a tombstone reports "absent" to the
// caller. Modeled as a distinguished value rather than by key absence,
// because absence can't shadow an older committed version from a
// snapshot reader — a snapshot taken before the delete still needs to see
// the value that existed then.
type tombstone struct{}

// payload is either a stored string value or the tombstone sentinel.
// Kept as `any` (restricted in practice to string or tombstone{}) so the
// chain and overlay machinery never branches on value shape beyond the
// tombstone check.
type payload = any

var deleted payload = tombstone{}

func isTombstone(p payload) bool {
	_, ok := p.(tombstone)
	return ok
}

// versionEntry is one committed version of one key: (ts, payload).
type versionEntry struct {
	ts      Timestamp
	payload payload
}

// versionChain is the append-only ordered history of one key's committed
// versions. Timestamps strictly increase along the slice; entries are
// never rewritten or removed.
type versionChain struct {
	entries []versionEntry
}

// append adds a new entry to the end of the chain. The caller is
// responsible for drawing ts from the engine's clock so that it is unique
// and strictly greater than every existing entry.
func (c *versionChain) append(ts Timestamp, p payload) {
	c.entries = append(c.entries, versionEntry{ts: ts, payload: p})
}

// latest returns the chain's last entry, or false if the chain is empty.
func (c *versionChain) latest() (versionEntry, bool) {
	if len(c.entries) == 0 {
		return versionEntry{}, false
	}
	return c.entries[len(c.entries)-1], true
}

// atOrBefore scans from newest to oldest and returns the payload of the
// first entry whose timestamp is <= ts. Returns (nil, false) if no entry
// satisfies the bound. Timestamps strictly increase along the slice, so a
// binary search would also work; the linear scan is kept for now since
// chains are expected to stay short relative to lookup frequency.
func (c *versionChain) atOrBefore(ts Timestamp) (payload, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].ts <= ts {
			return c.entries[i].payload, true
		}
	}
	return nil, false
}
