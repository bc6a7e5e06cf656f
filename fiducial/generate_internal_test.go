package fiducial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumerateWords(t *testing.T) {
	words := enumerateWords(3)
	require.Len(t, words, 8)
	for i, w := range words {
		require.Equal(t, uint64(i), w.Bits())
		require.Equal(t, 3, w.Len())
	}
	require.Equal(t, "000", words[0].String())
	require.Equal(t, "111", words[7].String())
}

// TestStats_MatchesPublicScoring cross-checks the per-round snapshot against
// Codeword.Rarity and Dictionary.SumScore.
func TestStats_MatchesPublicScoring(t *testing.T) {
	d, err := NewDictionary(3, 3)
	require.NoError(t, err)
	m1, err := ParseMarker("100", "010", "101")
	require.NoError(t, err)
	m2, err := ParseMarker("100", "011", "000")
	require.NoError(t, err)
	d.Append(m1)
	d.Append(m2)

	for _, mode := range []TransitionMode{TransitionInteger, TransitionReal} {
		st := d.stats(mode)
		require.Equal(t, 6, st.total)
		require.InDelta(t, d.SumScore(mode), st.sum, 1e-12)
		for _, w := range enumerateWords(3) {
			require.InDelta(t, w.Rarity(d), st.rarity(w), 1e-12, w.String())
			want := w.transition(mode) * w.Rarity(d) / st.sum
			require.InDelta(t, want, st.score(w, mode), 1e-12, w.String())
		}
	}
}

func TestStats_EmptyDictionaryIsNotDividedByZero(t *testing.T) {
	d, err := NewDictionary(3, 3)
	require.NoError(t, err)
	st := d.stats(TransitionInteger)
	require.Equal(t, 0.0, st.sum)

	zero, _ := ParseCodeword("000")
	alt, _ := ParseCodeword("010")
	require.Equal(t, 0.0, st.score(zero, TransitionInteger))
	require.Equal(t, 1.0, st.score(alt, TransitionInteger))
}

func TestShuffleInPlace_Permutation(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7}
	shuffleInPlace(a, rngFromSeed(99))
	seen := make(map[int]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	require.Len(t, seen, 8)

	b := []int{0, 1, 2, 3, 4, 5, 6, 7}
	shuffleInPlace(b, rngFromSeed(99))
	require.Equal(t, a, b)
}
