package broadword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank1(t *testing.T) {
	x := uint64(0x5) // 0b101
	assert.Equal(t, 0, Rank1(x, 0))
	assert.Equal(t, 1, Rank1(x, 1))
	assert.Equal(t, 1, Rank1(x, 2))
	assert.Equal(t, 2, Rank1(x, 3))
	assert.Equal(t, 2, Rank1(x, 64))
	assert.Equal(t, 2, Rank1(x, 1000))
}

func TestRank0(t *testing.T) {
	x := uint64(0x5)
	assert.Equal(t, 1, Rank0(x, 3))
	assert.Equal(t, 62, Rank0(x, 64))
}

func TestSelect(t *testing.T) {
	x := uint64(0x5) // 0b101
	p, err := Select(x, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	p, err = Select(x, true, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p)

	_, err = Select(x, true, 3)
	assert.ErrorIs(t, err, ErrSelectExhausted)

	_, err = Select(x, true, 0)
	assert.ErrorIs(t, err, ErrSelectExhausted)
}

func TestSelectZeroBit(t *testing.T) {
	x := uint64(0x5) // 0b...0101
	p, err := Select(x, false, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p)
}

func TestBitIteratorMSBFirst(t *testing.T) {
	it := NewBitIteratorWidth(0b101, 3)
	var got []bool
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, b)
	}
	assert.Equal(t, []bool{true, false, true}, got)
}

func TestBitIteratorFullWord(t *testing.T) {
	it := NewBitIterator(1)
	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 64, count)
}

func TestBitIteratorRemaining(t *testing.T) {
	it := NewBitIteratorWidth(0b10, 2)
	assert.Equal(t, 2, it.Remaining())
	it.Next()
	assert.Equal(t, 1, it.Remaining())
	it.Next()
	assert.Equal(t, 0, it.Remaining())
	_, ok := it.Next()
	assert.False(t, ok)
}
