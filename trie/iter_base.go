package trie

// iterState is the per-iterator state machine from spec.md §4.7:
// fresh -> active -> {exhausted, out-of-sync, replaced} -> closed.
type iterState int

const (
	iterFresh iterState = iota
	iterActive
	iterExhausted
	iterOutOfSync
	iterReplaced
	iterClosed
)

// iterBase implements the state_id half of the iterator safety protocol
// shared by all three iterator families (spec.md §4.6). The dirty-iterator
// replacement check (spec.md §4.6 step 2) is only meaningful for
// HammingPairsIterator, which layers its own check on top in its Next and
// records the result via latchReplaced; clean iterators never call it.
//
// Once an error is latched, the iterator yields only "end" on every
// subsequent Next; the latched status remains readable through Err until
// Close.
type iterBase struct {
	store    *Store
	snap     uint64
	state    iterState
	status   Status
	lenQuery int
}

func newIterBase(s *Store) iterBase {
	return iterBase{store: s, snap: s.stateID, state: iterFresh}
}

// latched reports whether the iterator has already recorded a terminal
// status and should yield only "end" from here on.
func (b *iterBase) latched() bool {
	return b.state == iterOutOfSync || b.state == iterReplaced || b.state == iterExhausted || b.state == iterClosed
}

// checkSync runs step 1 of spec.md §4.6 and returns false if the iterator
// must stop because the store mutated since birth. kind is used only for
// the log message.
func (b *iterBase) checkSync(kind string) bool {
	if b.latched() {
		return false
	}
	if b.state == iterFresh {
		b.state = iterActive
	}
	if b.store.stateID != b.snap {
		b.state = iterOutOfSync
		b.status = StatusOutOfSync
		logInvalidation(kind, b.status)
		return false
	}
	return true
}

// latchReplaced records the replaced state (spec.md §4.6 step 2), called
// by HammingPairsIterator when the store's dirty slot no longer names it.
func (b *iterBase) latchReplaced(kind string) {
	b.state = iterReplaced
	b.status = StatusReplaced
	logInvalidation(kind, b.status)
}

func (b *iterBase) finishExhausted() {
	if !b.latched() {
		b.state = iterExhausted
		b.status = StatusOK
	}
}

// Err returns the latched status; StatusOK if none has been latched.
func (b *iterBase) Err() Status { return b.status }

// LenQuery returns the byte length of the query subtree's key, so
// consumers can slice a suffix result (spec.md §4.2).
func (b *iterBase) LenQuery() int { return b.lenQuery }

func (b *iterBase) close() {
	b.state = iterClosed
}
