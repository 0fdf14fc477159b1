package bitvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVector(t *testing.T) *BitVector {
	t.Helper()
	v, err := New([]uint64{0b0110, 0b1001, 0b1100}, 192)
	require.NoError(t, err)
	return v
}

func TestRank1SeedScenario(t *testing.T) {
	v := seedVector(t)
	cases := []struct {
		i    int
		want int
	}{
		{2, 1}, {3, 2}, {65, 3}, {130, 4}, {131, 5}, {132, 6},
	}
	for _, c := range cases {
		got, err := v.Rank1(c.i)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "rank1(%d)", c.i)
	}
}

func TestRank0SeedScenario(t *testing.T) {
	v := seedVector(t)
	got, err := v.Rank0(2)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = v.Rank0(64)
	require.NoError(t, err)
	assert.Equal(t, 62, got)
}

// TestSelectSeedScenario covers a worked select example under this
// module's chosen convention: Select(b, n) for n >= 1 returns the
// position one past the n-th occurrence of b (so Get(Select(b,n)-1)==b
// and Rank1(Select(b,n))==n). Note that rank1(131) = 5 and
// rank1(132) = 6 for this vector, so under any convention where
// Rank(Select(b,n)) == n, select(true, 6) must be 132, which is what
// this implementation (and this test) uses.
func TestSelectSeedScenario(t *testing.T) {
	v := seedVector(t)
	cases := []struct {
		n    int
		want int
	}{
		{1, 2}, {2, 3}, {3, 65}, {6, 132},
	}
	for _, c := range cases {
		got, err := v.Select(true, c.n)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "select(true, %d)", c.n)
	}

	got, err := v.Select(false, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = v.Select(false, 62)
	require.NoError(t, err)
	assert.Equal(t, 64, got)
}

func TestSelectZeroIsSentinel(t *testing.T) {
	v := seedVector(t)
	got, err := v.Select(true, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestSelectInversion(t *testing.T) {
	v := seedVector(t)
	ones, err := v.Rank1(v.Len())
	require.NoError(t, err)
	for n := 1; n <= ones; n++ {
		pos, err := v.Select(true, n)
		require.NoError(t, err)
		rank, err := v.Rank1(pos)
		require.NoError(t, err)
		assert.Equal(t, n, rank)
		bit, err := v.Get(pos - 1)
		require.NoError(t, err)
		assert.True(t, bit)
	}
}

func TestSelectCountExhausted(t *testing.T) {
	v := seedVector(t)
	_, err := v.Select(true, 7)
	assert.ErrorIs(t, err, ErrCountExhausted)
}

func TestGetOutOfRange(t *testing.T) {
	v := seedVector(t)
	_, err := v.Get(192)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = v.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRankOutOfRange(t *testing.T) {
	v := seedVector(t)
	_, err := v.Rank1(193)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBuilderRoundTrip(t *testing.T) {
	bits := []bool{true, false, false, true, true, false, true, false, false, true}
	b := NewBuilder()
	for _, bit := range bits {
		require.NoError(t, b.Push(bit))
	}
	v, err := b.Finish()
	require.NoError(t, err)
	require.Equal(t, len(bits), v.Len())
	for i, want := range bits {
		got, err := v.Get(i)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "get(%d)", i)
	}
}

func TestNewBufferLengthMismatch(t *testing.T) {
	_, err := New([]uint64{1}, 128)
	assert.Error(t, err)
}
