package trie

// NeighborResult is one emission from a NeighborIterator: Target is an
// item-bearing node at the same depth as the query, differing from it at
// exactly Hd positions (1 <= Hd <= maxhd).
type NeighborResult struct {
	Query  Item
	Target Item
	Hd     int
}

type neighborFrame struct {
	node  nodeRef
	hd    int
	depth int
}

// NeighborIterator enumerates every item-bearing node at the query's depth
// whose key differs from the query at between 1 and maxhd positions
// (substitutions only). It is a clean iterator.
type NeighborIterator struct {
	iterBase

	queryNode nodeRef
	queryKey  []byte
	maxhd     int
	stack     *stateStack[neighborFrame]
}

// NewNeighborIterator constructs a neighbor iterator for an existing
// item-bearing key. It returns (nil, ErrInvalidArgument) if s or key is
// nil or maxhd < 1, and (nil, ErrNotFound) if key does not name an item in
// the store.
func NewNeighborIterator(s *Store, key []byte, maxhd int) (*NeighborIterator, error) {
	if s == nil || key == nil || maxhd < 1 {
		return nil, ErrInvalidArgument
	}
	r := s.lookup(key)
	if r == nilRef || !s.arena.at(r).itemBearing() {
		return nil, ErrNotFound
	}
	it := &NeighborIterator{
		iterBase:  newIterBase(s),
		queryNode: r,
		queryKey:  s.arena.at(r).key,
		maxhd:     maxhd,
		stack:     newStateStack[neighborFrame](8),
	}
	it.lenQuery = len(it.queryKey)
	it.stack.push(neighborFrame{node: rootRef, hd: 0, depth: 0})
	return it, nil
}

func (it *NeighborIterator) expand(f neighborFrame) {
	n := it.store.arena.at(f.node)
	for c := n.child; c != nilRef; c = it.store.arena.at(c).sibling {
		cn := it.store.arena.at(c)
		if int(f.depth) < len(it.queryKey) && cn.ch == it.queryKey[f.depth] {
			it.stack.push(neighborFrame{node: c, hd: f.hd, depth: f.depth + 1})
		} else if f.hd < it.maxhd {
			it.stack.push(neighborFrame{node: c, hd: f.hd + 1, depth: f.depth + 1})
		}
		// else: prune, hd would exceed maxhd.
	}
}

// Next advances the iterator. ok is false once the search is exhausted or
// the iterator has latched an error (readable via Err).
func (it *NeighborIterator) Next() (NeighborResult, bool) {
	if !it.checkSync("neighbors") {
		return NeighborResult{}, false
	}
	L := len(it.queryKey)
	for {
		f, ok := it.stack.pop()
		if !ok {
			it.finishExhausted()
			return NeighborResult{}, false
		}
		if f.depth == L {
			n := it.store.arena.at(f.node)
			if n.itemBearing() && f.hd > 0 {
				qn := it.store.arena.at(it.queryNode)
				return NeighborResult{
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

// Close tears down the iterator. Neighbor iterators are clean and never
// set node flags.
func (it *NeighborIterator) Close() {
	it.close()
}
