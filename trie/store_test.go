package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyStore(t *testing.T) {
	s := New()
	assert.EqualValues(t, 0, s.NumItems())

	_, ok := s.GetItem([]byte("x"))
	assert.False(t, ok)

	it, err := NewSuffixIterator(s, []byte{})
	require.NoError(t, err)
	require.NotNil(t, it)
	defer it.Close()
	_, ok = it.Next()
	assert.False(t, ok)

	_, ok = s.LongestPrefix([]byte("abc"))
	assert.False(t, ok)
}

func TestSingleKey(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("cat"), "V1", nil))

	assert.True(t, s.HasKey([]byte("cat")))
	assert.True(t, s.HasNode([]byte("ca")))
	assert.False(t, s.HasKey([]byte("ca")))

	item, ok := s.LongestPrefix([]byte("catalog"))
	require.True(t, ok)
	assert.Equal(t, "cat", string(item.Key))
	assert.Equal(t, "V1", item.Value)
}

func TestDeletionCompaction(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("car"), "A", nil))
	require.NoError(t, s.Set([]byte("cat"), "B", nil))

	require.NoError(t, s.Del([]byte("car"), nil))
	assert.EqualValues(t, 1, s.NumItems())
	assert.True(t, s.HasNode([]byte("ca")))
	assert.False(t, s.HasNode([]byte("car")))

	item, ok := s.GetItem([]byte("cat"))
	require.True(t, ok)
	assert.Equal(t, "B", item.Value)

	require.NoError(t, s.Del([]byte("cat"), nil))
	assert.EqualValues(t, 0, s.NumNodes())
}

func TestOverwriteCallsDeallocatorExactlyOnce(t *testing.T) {
	s := New()
	var dropped []any
	dealloc := DeallocatorFunc(func(v any) { dropped = append(dropped, v) })

	require.NoError(t, s.Set([]byte("k"), "v1", dealloc))
	require.NoError(t, s.Set([]byte("k"), "v2", dealloc))

	item, ok := s.GetItem([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, "v2", item.Value)
	assert.Equal(t, []any{"v1"}, dropped)
}

func TestOverwriteDoesNotBumpStateID(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("k"), "v1", nil))
	before := s.StateID()
	require.NoError(t, s.Set([]byte("k"), "v2", nil))
	assert.Equal(t, before, s.StateID())
}

func TestDeletionPreservesSiblingKey(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("abcd"), 1, nil))
	require.NoError(t, s.Set([]byte("abce"), 2, nil))

	require.NoError(t, s.Del([]byte("abcd"), nil))

	item, ok := s.GetItem([]byte("abce"))
	require.True(t, ok)
	assert.Equal(t, 2, item.Value)
}

func TestEmptyKeyIsRepresentable(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte{}, "root-value", nil))

	item, ok := s.GetItem([]byte{})
	require.True(t, ok)
	assert.Equal(t, "root-value", item.Value)

	item, ok = s.LongestPrefix([]byte("anything"))
	require.True(t, ok)
	assert.Equal(t, "root-value", item.Value)
}

func TestSetSequenceTracksItemCount(t *testing.T) {
	s := New()
	keys := []string{"a", "ab", "abc", "b"}
	for i, k := range keys {
		require.NoError(t, s.Set([]byte(k), i, nil))
	}
	assert.EqualValues(t, len(keys), s.NumItems())

	require.NoError(t, s.Del([]byte("ab"), nil))
	assert.EqualValues(t, len(keys)-1, s.NumItems())
	assert.True(t, s.HasNode([]byte("ab")), "structural node must survive: \"abc\" still passes through it")
}

func TestSetAndDelInvalidArgument(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Set(nil, 1, nil), ErrInvalidArgument)
	assert.ErrorIs(t, s.Del(nil, nil), ErrInvalidArgument)
	assert.ErrorIs(t, s.Del([]byte("nope"), nil), ErrNotFound)
}

func TestFingerprintIndependentOfInsertionOrder(t *testing.T) {
	s1 := New()
	s2 := New()
	for _, k := range []string{"zzz", "aaa", "mmm"} {
		require.NoError(t, s1.Set([]byte(k), nil, nil))
	}
	for _, k := range []string{"mmm", "zzz", "aaa"} {
		require.NoError(t, s2.Set([]byte(k), nil, nil))
	}
	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	require.NoError(t, s2.Set([]byte("extra"), nil, nil))
	assert.NotEqual(t, s1.Fingerprint(), s2.Fingerprint())
}
