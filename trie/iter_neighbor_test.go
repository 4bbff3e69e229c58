package trie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	key string
	hd  int
}

func collectNeighbors(t *testing.T, s *Store, query string, maxhd int) []pair {
	t.Helper()
	it, err := NewNeighborIterator(s, []byte(query), maxhd)
	require.NoError(t, err)
	require.NotNil(t, it)
	defer it.Close()

	var got []pair
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pair{key: string(res.Target.Key), hd: res.Hd})
	}
	require.Equal(t, StatusOK, it.Err())
	sort.Slice(got, func(i, j int) bool { return got[i].key < got[j].key })
	return got
}

func TestNeighborSearchExactPack(t *testing.T) {
	s := New()
	for _, k := range []string{"abcd", "abce", "abzd", "zzzz"} {
		require.NoError(t, s.Set([]byte(k), nil, nil))
	}

	got := collectNeighbors(t, s, "abcd", 1)
	assert.Equal(t, []pair{{"abce", 1}, {"abzd", 1}}, got)

	got2 := collectNeighbors(t, s, "abcd", 2)
	assert.Equal(t, []pair{{"abce", 1}, {"abzd", 1}}, got2, "zzzz differs at all 4 positions, still out of range at maxhd=2")
}

func TestNeighborRejectsUnknownQuery(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("abcd"), nil, nil))

	_, err := NewNeighborIterator(s, []byte("zzzz"), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNeighborRejectsZeroBound(t *testing.T) {
	s := New()
	require.NoError(t, s.Set([]byte("abcd"), nil, nil))

	_, err := NewNeighborIterator(s, []byte("abcd"), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNeighborExcludesQueryItself(t *testing.T) {
	s := New()
	for _, k := range []string{"aaaa", "aaab"} {
		require.NoError(t, s.Set([]byte(k), nil, nil))
	}
	got := collectNeighbors(t, s, "aaaa", 4)
	for _, p := range got {
		assert.NotEqual(t, "aaaa", p.key)
	}
}
