package trie

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a blake2b-256 digest over the current key
// population, independent of insertion order or sibling-list layout. It is
// a debug/test aid in the spirit of the teacher's Trie.Hash() — comparing
// two stores built from the same logical key set via different mutation
// orders — and is not a serialization format: there is no corresponding
// Load, and the digest carries no payload bytes (spec.md §1 excludes
// persistence and serialization).
func (s *Store) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	for _, e := range s.collectItemsSorted() {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(e.key)))
		h.Write(lenBuf[:])
		h.Write(e.key)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
