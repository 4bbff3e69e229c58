package trie

import "fmt"

// Deallocator is the value-ops capability a Store is parameterized by
// (spec.md §9, "value ownership delegation"). Drop is invoked on a value
// that the store is giving up ownership of, whenever a key is overwritten,
// deleted, or the store itself is torn down.
type Deallocator interface {
	Drop(value any)
}

// DeallocatorFunc adapts a plain function to the Deallocator interface.
type DeallocatorFunc func(value any)

// Drop implements Deallocator.
func (f DeallocatorFunc) Drop(value any) { f(value) }

// NoopDeallocator is the capability passed when the caller wants values
// handed back to it, uninvoked, rather than reclaimed by the store — used
// for pop-style operations that transfer ownership back to the caller.
var NoopDeallocator Deallocator = DeallocatorFunc(func(any) {})

// flag bits on a node. EXPLORED is the only defined bit (spec.md §3) and is
// used solely by the all-pairs iterator to prune already-emitted queries.
type flagBits uint8

const flagExplored flagBits = 1 << 0

// nodeRef is an index into a Store's node arena. The zero value, nilRef,
// stands for "no node" everywhere a C implementation would use a null
// pointer. Representing parent/child/sibling links as arena indices rather
// than owning pointers sidesteps the reference cycles the parent back-link
// would otherwise create (spec.md §9, "cyclic structure").
type nodeRef uint32

const nilRef nodeRef = 0

// node is one character position on one path from the root. The root
// itself always occupies arena slot 1 (slot 0 is reserved so nilRef can be
// the zero value); ch is meaningless on the root.
type node struct {
	ch    byte
	key   []byte // full key ending at this node; nil iff not item-bearing
	val   any    // payload; always nil when !itemBearing() (an item may hold nil)
	flags flagBits

	parent  nodeRef
	child   nodeRef // first child
	sibling nodeRef // next sibling under the same parent
}

func (n *node) itemBearing() bool { return n.key != nil }

func (n *node) explored() bool { return n.flags&flagExplored != 0 }
func (n *node) setExplored()   { n.flags |= flagExplored }
func (n *node) clearFlags()    { n.flags = 0 }

// nodeArena owns every node reachable from the root of a single Store.
// Nodes are never shared between stores (spec.md §5). Freed slots are
// recycled from freeList before the arena grows, so a delete-heavy
// workload does not leak arena capacity.
type nodeArena struct {
	nodes    []node
	freeList []nodeRef
}

func newNodeArena(capacityHint int) *nodeArena {
	if capacityHint < 1 {
		capacityHint = 1
	}
	a := &nodeArena{
		// slot 0 reserved as nilRef; slot 1 is the root.
		nodes: make([]node, 2, capacityHint+2),
	}
	return a
}

func (a *nodeArena) at(r nodeRef) *node {
	return &a.nodes[r]
}

// alloc grows the arena to hand out a fresh node, or recycles a freed slot.
// Allocation failure (an out-of-memory panic from the runtime allocator) is
// fatal by contract (spec.md §8): it is logged as a diagnostic and then
// re-raised so the process aborts, rather than returned as an error a
// caller could mistakenly continue past.
func (a *nodeArena) alloc(parent nodeRef, ch byte) (ref nodeRef) {
	defer func() {
		if r := recover(); r != nil {
			abortOnAllocFailure(fmt.Errorf("%v", r))
		}
	}()
	if n := len(a.freeList); n > 0 {
		r := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		*a.at(r) = node{ch: ch, parent: parent}
		return r
	}
	a.nodes = append(a.nodes, node{ch: ch, parent: parent})
	return nodeRef(len(a.nodes) - 1)
}

// free reclaims a node's slot. The caller must have already unlinked it
// from its parent's sibling list.
func (a *nodeArena) free(r nodeRef) {
	*a.at(r) = node{}
	a.freeList = append(a.freeList, r)
}

// approxNodeBytes is the tracked memsize contribution of one arena node,
// excluding the caller-owned value and excluding the key buffer (which is
// tracked separately since it varies in length).
const approxNodeBytes = 64

const rootRef nodeRef = 1
