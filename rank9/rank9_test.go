package rank9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRank9(t *testing.T) *Rank9 {
	t.Helper()
	r, err := New([]uint64{0b0110, 0b1001, 0b1100}, 192)
	require.NoError(t, err)
	return r
}

func TestRank9Rank1SeedScenario(t *testing.T) {
	r := seedRank9(t)
	cases := []struct {
		i    int
		want int
	}{
		{2, 1}, {3, 2}, {65, 3}, {130, 4}, {131, 5}, {132, 6},
	}
	for _, c := range cases {
		got, err := r.Rank1(c.i)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "rank1(%d)", c.i)
	}
}

func TestRank9Rank0SeedScenario(t *testing.T) {
	r := seedRank9(t)
	got, err := r.Rank0(2)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = r.Rank0(64)
	require.NoError(t, err)
	assert.Equal(t, 62, got)
}

func TestRank9SelectSeedScenario(t *testing.T) {
	r := seedRank9(t)
	cases := []struct {
		n    int
		want int
	}{
		{1, 2}, {2, 3}, {3, 65}, {6, 132},
	}
	for _, c := range cases {
		got, err := r.Select(true, c.n)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "select(true, %d)", c.n)
	}

	got, err := r.Select(false, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = r.Select(false, 62)
	require.NoError(t, err)
	assert.Equal(t, 64, got)
}

func TestRank9SelectZeroIsSentinel(t *testing.T) {
	r := seedRank9(t)
	got, err := r.Select(true, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

// TestRank9BlockBoundaries covers seed scenario 6: an all-ones vector
// spanning exactly 3 basic blocks (512*3 = 1536 bits), verifying
// rank1(i) == i for every 7th i in [0, 1536] and select(true, k) == k
// for every 11th k in [1, 1536].
func TestRank9BlockBoundaries(t *testing.T) {
	const bits = 512 * 3
	words := make([]uint64, bits/64)
	for i := range words {
		words[i] = ^uint64(0)
	}
	r, err := New(words, bits)
	require.NoError(t, err)

	for i := 0; i <= bits; i += 7 {
		got, err := r.Rank1(i)
		require.NoError(t, err)
		assert.Equalf(t, i, got, "rank1(%d)", i)
	}
	for k := 1; k <= bits; k += 11 {
		got, err := r.Select(true, k)
		require.NoError(t, err)
		assert.Equalf(t, k, got, "select(true, %d)", k)
	}
}

// TestRank9Select0RunOfOnesAcrossBlocks exercises a long run of 1-bits
// crossing a block boundary, with a handful of zeros placed before and
// after it, checked via Select(false, ...).
func TestRank9Select0RunOfOnesAcrossBlocks(t *testing.T) {
	const bits = 512 * 3
	words := make([]uint64, bits/64)
	// Ones from bit 10 through bit (512+100), a run that straddles the
	// block-0/block-1 boundary at bit 512. Zeros remain at [0,10) and
	// from (512+100, 1536).
	for i := 10; i <= 512+100; i++ {
		words[i/64] |= 1 << uint(i%64)
	}
	r, err := New(words, bits)
	require.NoError(t, err)

	// zeros are at positions 0..9 and 613..1535 (1-indexed occurrences)
	for n := 1; n <= 10; n++ {
		got, err := r.Select(false, n)
		require.NoError(t, err)
		assert.Equal(t, n, got) // zero at position n-1, one-past == n
	}
	// total zeros: 10 + (1536 - 613) = 10 + 923 = 933
	totalZeros := 10 + (bits - (512 + 101))
	lastZero, err := r.Select(false, totalZeros)
	require.NoError(t, err)
	bitAtLastZeroMinus1, err := r.Rank0(lastZero)
	require.NoError(t, err)
	assert.Equal(t, totalZeros, bitAtLastZeroMinus1)
}

func TestRank9SelectCountExhausted(t *testing.T) {
	r := seedRank9(t)
	_, err := r.Select(true, 7)
	assert.ErrorIs(t, err, ErrCountExhausted)
}

func TestRank9SelectAllMatchesIndividualSelects(t *testing.T) {
	const bits = 512 * 3
	words := make([]uint64, bits/64)
	for i := 0; i < bits; i += 3 {
		words[i/64] |= 1 << uint(i%64)
	}
	r, err := New(words, bits)
	require.NoError(t, err)

	total, err := r.Rank1(bits)
	require.NoError(t, err)

	ns := make([]int, 0, total)
	for n := 1; n <= total; n++ {
		ns = append(ns, n)
	}
	got, err := r.SelectAll(true, ns)
	require.NoError(t, err)
	for i, n := range ns {
		want, err := r.Select(true, n)
		require.NoError(t, err)
		assert.Equalf(t, want, got[i], "select_all mismatch at n=%d", n)
	}
}

func TestRank9GetOutOfRange(t *testing.T) {
	r := seedRank9(t)
	_, err := r.Get(192)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRank9WithQueryCache(t *testing.T) {
	words := []uint64{0b0110, 0b1001, 0b1100}
	r, err := New(words, 192, WithQueryCache(16))
	require.NoError(t, err)

	first, err := r.Select(true, 3)
	require.NoError(t, err)
	second, err := r.Select(true, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 65, first)
}

func TestNewBufferLengthMismatch(t *testing.T) {
	_, err := New([]uint64{1}, 128)
	assert.Error(t, err)
}
