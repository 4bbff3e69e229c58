package trie

// PairResult is one emission from a HammingPairsIterator: an unordered
// pair {Query, Target} of distinct equal-length item-bearing keys whose
// Hamming distance is Hd (1 <= Hd <= maxhd). The query/target assignment
// within a pair follows the order in which item-bearing nodes were
// collected at construction (spec.md §5).
type PairResult struct {
	Query  Item
	Target Item
	Hd     int
}

type pairFrame struct {
	node  nodeRef
	hd    int
	depth int
}

// HammingPairsIterator enumerates every unordered pair of distinct
// item-bearing keys of a given length whose Hamming distance is at most
// maxhd. It is the package's one dirty iterator: it marks node.flags
// (EXPLORED) to collapse already-emitted queries out of the tree, and
// registers itself as the store's single active dirty iterator
// (spec.md §4.4, §4.7).
type HammingPairsIterator struct {
	iterBase

	keylen int
	maxhd  int

	targets *stateStack[nodeRef] // item-bearing nodes at depth keylen, uncollapsed
	stack   *stateStack[pairFrame]

	curQuery    nodeRef
	curQueryKey []byte
}

// NewHammingPairsIterator constructs an all-pairs iterator over every
// item-bearing key of length keylen. If a dirty iterator is already active
// on s, it is replaced: the trie's flags are reset and the previous
// iterator's next Next call will report StatusReplaced.
//
// Returns (nil, ErrInvalidArgument) if s is nil, keylen < 0, or maxhd < 1
// (unless s was built WithStrictZeroBound(false), in which case maxhd == 0
// is accepted and yields an empty enumeration).
func NewHammingPairsIterator(s *Store, keylen, maxhd int) (*HammingPairsIterator, error) {
	if s == nil || keylen < 0 {
		return nil, ErrInvalidArgument
	}
	minBound := 1
	if !s.strictZeroBound {
		minBound = 0
	}
	if maxhd < minBound {
		return nil, ErrInvalidArgument
	}

	if s.dirtyIter != nil {
		resetAllFlags(s)
		s.dirtyIter.latchReplaced("hammingpairs")
		s.dirtyIter = nil
	}

	it := &HammingPairsIterator{
		iterBase: newIterBase(s),
		keylen:   keylen,
		maxhd:    maxhd,
		targets:  newStateStack[nodeRef](8),
		stack:    newStateStack[pairFrame](8),
	}
	it.collectTargets(rootRef, 0)
	s.dirtyIter = it
	return it, nil
}

// collectTargets walks the full trie once, pushing every item-bearing
// node found at depth == keylen onto the target stack.
func (it *HammingPairsIterator) collectTargets(r nodeRef, depth int) {
	if depth == it.keylen {
		if it.store.arena.at(r).itemBearing() {
			it.targets.push(r)
		}
		return
	}
	n := it.store.arena.at(r)
	for c := n.child; c != nilRef; c = it.store.arena.at(c).sibling {
		it.collectTargets(c, depth+1)
	}
}

// resetAllFlags clears every node's flags in s, restoring invariant 8.
func resetAllFlags(s *Store) {
	for i := range s.arena.nodes {
		s.arena.nodes[i].clearFlags()
	}
}

// expand pushes f's unexplored children, simulating Hamming distance
// against the current query key, and collapses f itself to EXPLORED if
// every child is already explored (spec.md §4.4).
func (it *HammingPairsIterator) expand(f pairFrame) {
	n := it.store.arena.at(f.node)
	hasChild := false
	allExplored := true
	for c := n.child; c != nilRef; c = it.store.arena.at(c).sibling {
		hasChild = true
		cn := it.store.arena.at(c)
		if cn.explored() {
			continue
		}
		allExplored = false
		if f.depth < len(it.curQueryKey) && cn.ch == it.curQueryKey[f.depth] {
			it.stack.push(pairFrame{node: c, hd: f.hd, depth: f.depth + 1})
		} else if f.hd < it.maxhd {
			it.stack.push(pairFrame{node: c, hd: f.hd + 1, depth: f.depth + 1})
		}
	}
	if hasChild && allExplored {
		n.setExplored()
	}
}

// Next advances the iterator. ok is false once every pair has been
// reported or the iterator has latched an error (readable via Err).
func (it *HammingPairsIterator) Next() (PairResult, bool) {
	if !it.checkSync("hammingpairs") {
		return PairResult{}, false
	}
	if it.store.dirtyIter != it {
		it.latchReplaced("hammingpairs")
		return PairResult{}, false
	}
	for {
		f, ok := it.stack.pop()
		if !ok {
			q, ok2 := it.targets.pop()
			if !ok2 {
				it.finishExhausted()
				return PairResult{}, false
			}
			qn := it.store.arena.at(q)
			qn.setExplored()
			it.curQuery = q
			it.curQueryKey = qn.key
			it.stack.push(pairFrame{node: rootRef, hd: 0, depth: 0})
			continue
		}
		if f.depth == it.keylen {
			n := it.store.arena.at(f.node)
			if !n.itemBearing() {
				n.setExplored()
				continue
			}
			if f.hd > 0 {
				qn := it.store.arena.at(it.curQuery)
				return PairResult{
					Query:  Item{Key: qn.key, Value: qn.val},
					Target: Item{Key: n.key, Value: n.val},
					Hd:     f.hd,
				}, true
			}
			continue
		}
		it.expand(f)
	}
}

// Close tears down the iterator, restoring every node's flags to zero and
// releasing the store's dirty-iterator slot if it still names this
// iterator.
func (it *HammingPairsIterator) Close() {
	resetAllFlags(it.store)
	if it.store.dirtyIter == it {
		it.store.dirtyIter = nil
	}
	it.close()
}
