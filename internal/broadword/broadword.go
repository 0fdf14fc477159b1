// Package broadword implements rank and select on a single 64-bit word
// (a "broadword"), the primitive every other structure in this module
// is built from.
package broadword

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrSelectExhausted is returned by Select when x has fewer than n
// matching bits.
var ErrSelectExhausted = errors.New("broadword: select exhausted")

// Rank1 returns the number of 1-bits in the lowest min(n, 64) bits of
// x. For n >= 64 this is popcount(x); for n == 0 it is 0.
func Rank1(x uint64, n int) int {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return bits.OnesCount64(x)
	}
	mask := uint64(1)<<uint(n) - 1
	return bits.OnesCount64(x & mask)
}

// Rank0 returns the number of 0-bits in the lowest n bits of x. The
// caller must ensure n <= 64.
func Rank0(x uint64, n int) int {
	return n - Rank1(x, n)
}

// Select returns the 0-based bit position p such that the number of
// b-valued bits in x[0..=p] equals n, and x[p] == b. n must be >= 1.
// Select(x, b, 0) is not meaningful at this layer (the sentinel
// convention for n == 0 is a property of the caller's select contract,
// not of a single word) and returns ErrSelectExhausted like any other
// under-supplied n.
func Select(x uint64, b bool, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("broadword: select(n=%d): %w", n, ErrSelectExhausted)
	}
	v := x
	if !b {
		v = ^x
	}
	remaining := n
	for p := 0; p < 64; p++ {
		if v&(1<<uint(p)) != 0 {
			remaining--
			if remaining == 0 {
				return p, nil
			}
		}
	}
	return 0, fmt.Errorf("broadword: select(n=%d) on word with fewer matching bits: %w", n, ErrSelectExhausted)
}

// BitIterator yields the bits of a primitive most-significant-bit-first.
// It is lazy and single-use: each call to Next advances the cursor.
// The wavelet tree depends on this exact order when splitting symbols
// into per-level bits.
type BitIterator struct {
	value   uint64
	width   int
	emitted int
}

// NewBitIterator returns an iterator over the low 64 bits of x,
// most-significant-bit-first.
func NewBitIterator(x uint64) *BitIterator {
	return NewBitIteratorWidth(x, 64)
}

// NewBitIteratorWidth returns an iterator over only the low w bits of
// x, useful for symbols narrower than a full machine word. w must be
// in [0, 64].
func NewBitIteratorWidth(x uint64, w int) *BitIterator {
	return &BitIterator{value: x, width: w}
}

// Next returns the next bit (MSB-first among the configured width) and
// true, or false once exhausted.
func (it *BitIterator) Next() (bool, bool) {
	if it.emitted >= it.width {
		return false, false
	}
	shift := it.width - it.emitted - 1
	bit := (it.value>>uint(shift))&1 == 1
	it.emitted++
	return bit, true
}

// Remaining reports how many bits are left to emit.
func (it *BitIterator) Remaining() int {
	return it.width - it.emitted
}
