package trie

// SuffixResult is one emission from a SuffixIterator: Target is an
// item-bearing descendant of the subtree named at construction, Query is
// the subtree's own key/prefix, and Hd is always 0 (spec.md §4.2).
type SuffixResult struct {
	Query  []byte
	Target Item
	Hd     int
}

// SuffixIterator enumerates every item-bearing descendant of the node
// named by the key given to NewSuffixIterator, via an explicit DFS state
// stack rather than recursion. It is a clean iterator: it never touches
// node flags.
type SuffixIterator struct {
	iterBase

	query []byte
	stack *stateStack[nodeRef]
}

// NewSuffixIterator constructs a suffix iterator rooted at the node named
// by key. It returns (nil, nil) if no such node exists in the store (the
// empty key always resolves, to the root), and (nil, ErrInvalidArgument)
// if s or key is nil.
func NewSuffixIterator(s *Store, key []byte) (*SuffixIterator, error) {
	if s == nil || key == nil {
		return nil, ErrInvalidArgument
	}
	root := s.lookup(key)
	if root == nilRef {
		return nil, nil
	}
	it := &SuffixIterator{
		iterBase: newIterBase(s),
		query:    append([]byte(nil), key...),
		stack:    newStateStack[nodeRef](8),
	}
	it.lenQuery = len(it.query)
	it.stack.push(root)
	return it, nil
}

// Next advances the iterator. ok is false once the subtree is exhausted or
// the iterator has latched an error (readable via Err).
func (it *SuffixIterator) Next() (SuffixResult, bool) {
	if !it.checkSync("suffixes") {
		return SuffixResult{}, false
	}
	for {
		r, ok := it.stack.pop()
		if !ok {
			it.finishExhausted()
			return SuffixResult{}, false
		}
		n := it.store.arena.at(r)
		// Push children before returning, so later pops continue the DFS.
		for c := n.child; c != nilRef; c = it.store.arena.at(c).sibling {
			it.stack.push(c)
		}
		if n.itemBearing() {
			return SuffixResult{
				Query:  it.query,
				Target: Item{Key: n.key, Value: n.val},
				Hd:     0,
			}, true
		}
	}
}

// Close tears down the iterator. Suffix iterators are clean (they never
// set node flags), so Close has no flags to reset.
func (it *SuffixIterator) Close() {
	it.close()
}
