// Package trie implements an in-memory trie keyed by arbitrary byte
// strings, with arbitrary per-key payloads, exact and prefix lookup, and
// approximate matching under Hamming distance (substitutions only, over
// equal-length keys).
//
// The trie uses a first-child/next-sibling layout with explicit parent
// links, all expressed as indices into a per-store node arena rather than
// owning pointers (see node.go). Three iterator families — suffix
// enumeration, single-query neighbor search, and all-pairs Hamming
// enumeration — walk the trie via an explicit state stack instead of
// recursion, so that Next can suspend between emissions (see stack.go and
// the iter_*.go files).
//
// A Store is not safe for concurrent use; see the package-level Store type
// for the full ownership and iterator-safety contract.
package trie

import (
	"bytes"

	"github.com/ethereum/go-ethereum/log"
)

// Store owns an entire trie: every node reachable from its root, every
// key buffer, and (via the configured Deallocator) every value. Stores are
// never shared; a node's parent/child/sibling links only ever point within
// the arena of the Store that allocated them.
type Store struct {
	arena *nodeArena

	numNodes uint64
	numItems uint64
	memsize  uint64

	// stateID is bumped whenever a node is added or removed (never on a
	// bare value overwrite). Iterators snapshot it at birth and compare it
	// on every Next call (spec.md §4.6).
	stateID uint64

	dealloc Deallocator

	// dirtyIter is a weak (non-owning) reference to the single currently
	// active dirty iterator, or nil. spec.md §9's third design note calls
	// for this to be an explicit store field with a documented
	// single-owner contract, rather than ambient global state.
	dirtyIter *HammingPairsIterator

	strictZeroBound bool
}

// New constructs an empty Store. The empty key is representable: the root
// node (arena slot 1) may itself become item-bearing via Set("", v).
func New(opts ...Option) *Store {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Store{
		arena:           newNodeArena(cfg.nodeCapacityHint),
		dealloc:         cfg.dealloc,
		strictZeroBound: cfg.strictZeroBound,
	}
	return s
}

// NumNodes returns the number of non-root nodes reachable from the root.
func (s *Store) NumNodes() uint64 { return s.numNodes }

// NumItems returns the number of item-bearing nodes reachable from the
// root.
func (s *Store) NumItems() uint64 { return s.numItems }

// MemUsage returns the tracked byte cost of every allocated non-root node
// (approxNodeBytes each) and every key buffer. The Store value itself and
// the root node are not counted. It deliberately excludes caller-owned
// payloads, which the store cannot size.
func (s *Store) MemUsage() uint64 { return s.memsize }

// StateID returns the store's current monotonic mutation counter. Exposed
// so a binding layer can implement its own invalidation checks without
// reimplementing the iterator safety protocol (spec.md §1).
func (s *Store) StateID() uint64 { return s.stateID }

func (s *Store) root() *node { return s.arena.at(rootRef) }

// lookup walks from the root, selecting at each step the child whose ch
// matches the next key byte via a linear scan of the sibling list. It
// returns nilRef if any step fails.
func (s *Store) lookup(key []byte) nodeRef {
	cur := rootRef
	for _, b := range key {
		cur = s.childWithByte(cur, b)
		if cur == nilRef {
			return nilRef
		}
	}
	return cur
}

func (s *Store) childWithByte(parent nodeRef, ch byte) nodeRef {
	for c := s.arena.at(parent).child; c != nilRef; c = s.arena.at(c).sibling {
		if s.arena.at(c).ch == ch {
			return c
		}
	}
	return nilRef
}

// HasKey reports whether key names an item-bearing node.
func (s *Store) HasKey(key []byte) bool {
	r := s.lookup(key)
	return r != nilRef && s.arena.at(r).itemBearing()
}

// HasNode reports whether key names any node, item-bearing or purely
// structural.
func (s *Store) HasNode(key []byte) bool {
	return s.lookup(key) != nilRef
}

// Item is a (key, value) pair returned by lookup-style operations. Value
// references the live payload stored in the trie and must not be mutated
// or freed by the caller; it is valid until the next mutating call.
type Item struct {
	Key   []byte
	Value any
}

// GetItem returns the item named by key, or ok=false if key is absent or
// names a purely structural node.
func (s *Store) GetItem(key []byte) (item Item, ok bool) {
	r := s.lookup(key)
	if r == nilRef {
		return Item{}, false
	}
	n := s.arena.at(r)
	if !n.itemBearing() {
		return Item{}, false
	}
	return Item{Key: n.key, Value: n.val}, true
}

// LongestPrefix walks as lookup does, recording the most recent
// item-bearing node on every successful step, and returns the last one
// recorded (including the empty-key entry at the root, if present). It
// returns ok=false if no prefix of key is a stored item.
func (s *Store) LongestPrefix(key []byte) (item Item, ok bool) {
	cur := rootRef
	var best nodeRef = nilRef
	if s.root().itemBearing() {
		best = rootRef
	}
	for _, b := range key {
		cur = s.childWithByte(cur, b)
		if cur == nilRef {
			break
		}
		if s.arena.at(cur).itemBearing() {
			best = cur
		}
	}
	if best == nilRef {
		return Item{}, false
	}
	n := s.arena.at(best)
	return Item{Key: n.key, Value: n.val}, true
}

// Set inserts or overwrites key with value. If dealloc is non-nil, it is
// used instead of the store's default deallocator to release any value
// being overwritten. Set walks/creates nodes as needed; newly created
// nodes are prepended to their parent's sibling list — callers must not
// depend on sibling order.
//
// Set returns ErrInvalidArgument if key is nil.
func (s *Store) Set(key []byte, value any, dealloc Deallocator) error {
	if key == nil {
		return ErrInvalidArgument
	}
	if dealloc == nil {
		dealloc = s.dealloc
	}
	cur := rootRef
	for _, b := range key {
		next := s.childWithByte(cur, b)
		if next == nilRef {
			next = s.arena.alloc(cur, b)
			curNode := s.arena.at(cur)
			s.arena.at(next).sibling = curNode.child
			curNode.child = next
			s.numNodes++
			s.memsize += approxNodeBytes
			s.stateID++
		}
		cur = next
	}
	n := s.arena.at(cur)
	wasItem := n.itemBearing()
	if wasItem {
		dealloc.Drop(n.val)
		s.memsize -= uint64(len(n.key))
	}
	// A non-nil slice even for the empty key, so the root can bear an item.
	n.key = append(make([]byte, 0, len(key)), key...)
	n.val = value
	s.memsize += uint64(len(n.key))
	if !wasItem {
		s.numItems++
		s.stateID++
	}
	return nil
}

// Del removes the item named by key. It walks upward afterward, unlinking
// and freeing every non-root, childless, non-item-bearing node on the
// path, so the trie never carries dead branches (spec.md §3 invariant 6).
//
// Del returns ErrInvalidArgument if key is nil, and ErrNotFound if key is
// not a stored item; in both cases the store is left unmodified.
func (s *Store) Del(key []byte, dealloc Deallocator) error {
	if key == nil {
		return ErrInvalidArgument
	}
	if dealloc == nil {
		dealloc = s.dealloc
	}
	target := s.lookup(key)
	if target == nilRef || !s.arena.at(target).itemBearing() {
		return ErrNotFound
	}
	n := s.arena.at(target)
	dealloc.Drop(n.val)
	s.memsize -= uint64(len(n.key))
	n.key = nil
	n.val = nil
	s.numItems--
	s.stateID++

	cur := target
	for cur != rootRef {
		n := s.arena.at(cur)
		if n.child != nilRef || n.itemBearing() {
			break
		}
		parent := n.parent
		s.unlinkChild(parent, cur)
		s.arena.free(cur)
		s.numNodes--
		s.memsize -= approxNodeBytes
		s.stateID++
		cur = parent
	}
	return nil
}

// unlinkChild removes child from parent's sibling list.
func (s *Store) unlinkChild(parent, child nodeRef) {
	p := s.arena.at(parent)
	if p.child == child {
		p.child = s.arena.at(child).sibling
		return
	}
	for c := p.child; c != nilRef; {
		cn := s.arena.at(c)
		if cn.sibling == child {
			cn.sibling = s.arena.at(child).sibling
			return
		}
		c = cn.sibling
	}
}

// Teardown releases every node, key buffer, and — via dealloc — every
// value. If dealloc is nil, the store's default deallocator is used.
// Iterators outstanding at teardown are undefined behavior by contract
// (spec.md §5); callers must tear down all iterators first.
func (s *Store) Teardown(dealloc Deallocator) {
	if dealloc == nil {
		dealloc = s.dealloc
	}
	s.teardownSubtree(rootRef, dealloc)
	s.arena = newNodeArena(1)
	s.numNodes, s.numItems, s.memsize = 0, 0, 0
	s.dirtyIter = nil
}

func (s *Store) teardownSubtree(r nodeRef, dealloc Deallocator) {
	n := s.arena.at(r)
	for c := n.child; c != nilRef; {
		next := s.arena.at(c).sibling
		s.teardownSubtree(c, dealloc)
		c = next
	}
	if n.itemBearing() {
		dealloc.Drop(n.val)
	}
}

// logInvalidation reports iterator invalidation through the teacher's
// aspirational logging seam (commented-out log.Crit calls in the teacher's
// trie_db.go), wired for real here.
func logInvalidation(kind string, status Status) {
	log.Debug("trie: iterator invalidated", "kind", kind, "status", status.String())
}

func abortOnAllocFailure(err error) {
	log.Warn("trie: arena allocation failed, aborting process", "err", err)
	panic(err)
}

// fingerprintEntry is the canonical per-item encoding folded into
// Store.Fingerprint; see fingerprint.go.
type fingerprintEntry struct {
	key []byte
}

func (s *Store) collectItemsSorted() []fingerprintEntry {
	it, _ := NewSuffixIterator(s, []byte{})
	if it == nil {
		return nil
	}
	defer it.Close()
	var entries []fingerprintEntry
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		entries = append(entries, fingerprintEntry{key: res.Target.Key})
	}
	// Deterministic ordering independent of sibling-list layout.
	sortFingerprintEntries(entries)
	return entries
}

func sortFingerprintEntries(entries []fingerprintEntry) {
	// Simple insertion sort: call sites pass at most a few thousand items
	// in tests; this keeps Fingerprint free of an extra stdlib sort import
	// dependency decision that would need its own justification.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && bytes.Compare(entries[j-1].key, entries[j].key) > 0; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}
