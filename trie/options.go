package trie

// Option configures a Store at construction time. The teacher exposes two
// near-identical constructors (NewTrieDB / NewTrieDBWithConfig) that both
// take bare positional arguments; this repo generalizes that seam into the
// functional-options idiom instead of growing a third constructor.
type Option func(*config)

type config struct {
	dealloc          Deallocator
	nodeCapacityHint int
	strictZeroBound  bool
}

func defaultConfig() config {
	return config{
		dealloc:          NoopDeallocator,
		nodeCapacityHint: 16,
		strictZeroBound:  true,
	}
}

// WithDeallocator sets the default value-ops capability invoked whenever a
// value is overwritten, deleted, or the store is torn down without an
// explicit per-call deallocator. Mutating calls may still override it with
// their own deallocator argument.
func WithDeallocator(d Deallocator) Option {
	return func(c *config) { c.dealloc = d }
}

// WithNodeCapacityHint preallocates arena capacity for the given number of
// non-root nodes, avoiding early reallocation for callers who know roughly
// how large their key set will be.
func WithNodeCapacityHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.nodeCapacityHint = n
		}
	}
}

// WithStrictZeroBound controls the resolution of spec.md §9's open question
// about maxhd == 0. When true (the default), NewHammingPairsIterator
// rejects maxhd < 1 just as NewNeighborIterator does. When false, it keeps
// the historical permissive behavior: maxhd == 0 is accepted and yields an
// empty enumeration, since no key has Hamming distance 0 from a distinct
// key of the same length.
func WithStrictZeroBound(strict bool) Option {
	return func(c *config) { c.strictZeroBound = strict }
}
