// Package bitvector implements a plain, packed bit vector: the
// un-indexed baseline dictionary, also usable as the per-level
// dictionary inside a wavelet tree when O(1) rank isn't needed.
//
// Logical bit i lives in word i/64 at bit position i%64 (the
// least-significant bit of word 0 is bit 0). Rank and select are
// answered by a linear scan over words; Rank9 (package rank9) trades
// 25% extra memory for O(1) rank and O(log log n) select over the
// same layout.
package bitvector

import (
	"errors"
	"fmt"

	"github.com/xflash-panda/succinct/builder"
	"github.com/xflash-panda/succinct/internal/broadword"
)

// ErrIndexOutOfRange is returned when a query index falls outside the
// vector's bounds.
var ErrIndexOutOfRange = errors.New("bitvector: index out of range")

// ErrCountExhausted is returned by Select when n exceeds the number of
// matching bits in the vector.
var ErrCountExhausted = errors.New("bitvector: select count exhausted")

// BitVector is a fixed-length, immutable sequence of bits packed into
// 64-bit words.
type BitVector struct {
	buffer []uint64
	bits   int
}

// New wraps an explicit word buffer as a bit vector of the given
// length. buffer must have exactly ceil(bits/64) words, and any bits at
// indices >= bits within the last word must be zero; New does not
// validate this (it trusts its caller, a builder or another internal
// component) beyond the length check.
func New(buffer []uint64, bits int) (*BitVector, error) {
	want := divCeil(bits, 64)
	if len(buffer) != want {
		return nil, fmt.Errorf("bitvector: buffer has %d words, want %d for %d bits", len(buffer), want, bits)
	}
	return &BitVector{buffer: buffer, bits: bits}, nil
}

func divCeil(a, b int) int {
	if a%b != 0 {
		return a/b + 1
	}
	return a / b
}

// Builder incrementally packs pushed bits into a BitVector.
type Builder struct {
	inner *builder.BitBuilder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{inner: builder.NewBitBuilder()}
}

// Push appends a single bit.
func (b *Builder) Push(bit bool) error {
	return b.inner.Push(bit)
}

// Finish flushes any partial word and returns the built BitVector.
func (b *Builder) Finish() (*BitVector, error) {
	res, err := b.inner.Finish()
	if err != nil {
		return nil, err
	}
	return New(res.Words, res.Bits)
}

// Len returns the number of bits in the vector.
func (v *BitVector) Len() int {
	return v.bits
}

// Buffer exposes the underlying packed words, read-only, for callers
// (like rank9.New) that build an index over an existing bit vector's
// storage without copying it.
func (v *BitVector) Buffer() []uint64 {
	return v.buffer
}

// Get returns the bit at position i. Requires 0 <= i < bits.
func (v *BitVector) Get(i int) (bool, error) {
	if i < 0 || i >= v.bits {
		return false, fmt.Errorf("bitvector: get(%d) out of range [0,%d): %w", i, v.bits, ErrIndexOutOfRange)
	}
	word := v.buffer[i/64]
	return (word>>uint(i%64))&1 == 1, nil
}

// Rank1 returns the number of 1-bits in positions [0, i). Precondition
// 0 <= i <= bits.
func (v *BitVector) Rank1(i int) (int, error) {
	if i < 0 || i > v.bits {
		return 0, fmt.Errorf("bitvector: rank1(%d) out of range [0,%d]: %w", i, v.bits, ErrIndexOutOfRange)
	}
	word := i / 64
	bit := i % 64
	count := 0
	for w := 0; w < word; w++ {
		count += broadword.Rank1(v.buffer[w], 64)
	}
	if bit > 0 {
		count += broadword.Rank1(v.buffer[word], bit)
	}
	return count, nil
}

// Rank0 returns the number of 0-bits in positions [0, i). Precondition
// 0 <= i <= bits.
func (v *BitVector) Rank0(i int) (int, error) {
	ones, err := v.Rank1(i)
	if err != nil {
		return 0, err
	}
	return i - ones, nil
}

// Select returns the position selected by the n-th occurrence of bit b,
// under the convention: n >= 1 selects the n-th occurrence and the
// returned position is one past it (so that
// Get(Select(b,n)-1) == b and Rank1(Select(b,n)) == n for b == true,
// symmetrically for b == false). Select(b, 0) == 0, a sentinel meaning
// "the position before the first occurrence".
func (v *BitVector) Select(b bool, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("bitvector: select(n=%d) negative count: %w", n, ErrCountExhausted)
	}
	remaining := n
	numWords := divCeil(v.bits, 64)
	for w := 0; w < numWords; w++ {
		wordBits := 64
		if w == numWords-1 && v.bits%64 != 0 {
			wordBits = v.bits % 64
		}
		count := broadword.Rank1(v.buffer[w], wordBits)
		if !b {
			count = wordBits - count
		}
		if count >= remaining {
			p, err := broadword.Select(v.buffer[w], b, remaining)
			if err != nil {
				return 0, fmt.Errorf("bitvector: select(b=%v, n=%d): %w", b, n, ErrCountExhausted)
			}
			return 64*w + p + 1, nil
		}
		remaining -= count
	}
	return 0, fmt.Errorf("bitvector: select(b=%v, n=%d) exceeds available bits: %w", b, n, ErrCountExhausted)
}
