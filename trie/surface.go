package trie

// This file is the handle-style surface spec.md §6 describes for a binding
// layer (a scripting-language adapter, say) that cannot express "this
// handle might not exist" any other way than an explicit optional. Every
// *Store method elsewhere in the package already assumes a non-nil
// receiver, which is the idiomatic Go shape; the wrappers below exist
// purely so a caller holding a possibly-nil handle — the only "absent
// store" a Go binding can produce — gets an explicit (value, ok) instead
// of spec.md §9's flagged SIZE_MAX-on-absent behavior.

// NumNodesOf returns (s.NumNodes(), true), or (0, false) if s is nil.
func NumNodesOf(s *Store) (uint64, bool) {
	if s == nil {
		return 0, false
	}
	return s.NumNodes(), true
}

// NumItemsOf returns (s.NumItems(), true), or (0, false) if s is nil.
func NumItemsOf(s *Store) (uint64, bool) {
	if s == nil {
		return 0, false
	}
	return s.NumItems(), true
}

// MemUsageOf returns (s.MemUsage(), true), or (0, false) if s is nil.
func MemUsageOf(s *Store) (uint64, bool) {
	if s == nil {
		return 0, false
	}
	return s.MemUsage(), true
}
