// Package rank9 implements Rank9 (Vigna 2014), a broadword-indexed bit
// vector giving O(1) rank and O(log log n) select via a two-level
// directory of per-block and per-word popcounts.
package rank9

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/xflash-panda/succinct/builder"
	"github.com/xflash-panda/succinct/internal/broadword"
)

const (
	wordsPerBlock = 8
	bitsPerBlock  = wordsPerBlock * 64
)

// ErrIndexOutOfRange is returned when a query index falls outside the
// vector's bounds.
var ErrIndexOutOfRange = errors.New("rank9: index out of range")

// ErrCountExhausted is returned by Select when n exceeds the number of
// matching bits in the vector.
var ErrCountExhausted = errors.New("rank9: select count exhausted")

// Rank9 is an immutable bit vector with an auxiliary two-level counter
// index. It owns its buffer and counts and never mutates either after
// construction.
type Rank9 struct {
	buffer []uint64
	bits   int
	counts []counts
	ones   int

	cache *queryCache
}

func divCeil(a, b int) int {
	if a%b != 0 {
		return a/b + 1
	}
	return a / b
}

// New builds a Rank9 over an explicit word buffer of the given bit
// length, in one pass over the words. buffer must have exactly
// ceil(bits/64) words; trailing bits beyond bits in the last word must
// be zero.
func New(buffer []uint64, bitLen int, opts ...Option) (*Rank9, error) {
	wantWords := divCeil(bitLen, 64)
	if len(buffer) != wantWords {
		return nil, fmt.Errorf("rank9: buffer has %d words, want %d for %d bits", len(buffer), wantWords, bitLen)
	}

	nBlocks := divCeil(wantWords, wordsPerBlock)
	padded := make([]uint64, nBlocks*wordsPerBlock)
	copy(padded, buffer)

	cnts := slices.Grow([]counts(nil), nBlocks)
	var accum counts
	var blockAccum uint64
	var rankAccum uint64
	for i, word := range padded {
		ones := uint64(bits.OnesCount64(word))
		rankAccum += ones
		blockAccum += ones
		bw := i % wordsPerBlock
		if bw == wordsPerBlock-1 {
			cnts = append(cnts, accum)
			blockAccum = 0
			accum = counts{blockRank: rankAccum}
		} else {
			accum.pushWord(blockAccum)
		}
	}

	r := &Rank9{buffer: padded, bits: bitLen, counts: cnts, ones: int(rankAccum)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Builder incrementally packs pushed bits and finishes into a Rank9.
type Builder struct {
	inner *builder.BitBuilder
	opts  []Option
}

// NewBuilder returns an empty Builder. Any Options are applied to the
// finished Rank9.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{inner: builder.NewBitBuilder(), opts: opts}
}

// Push appends a single bit.
func (b *Builder) Push(bit bool) error {
	return b.inner.Push(bit)
}

// Finish flushes any partial word, pads to a full block, and builds the
// Rank9 index.
func (b *Builder) Finish() (*Rank9, error) {
	res, err := b.inner.Finish()
	if err != nil {
		return nil, err
	}
	return New(res.Words, res.Bits, b.opts...)
}

// Len returns the number of bits in the vector.
func (r *Rank9) Len() int {
	return r.bits
}

// Get returns the bit at position i. Requires 0 <= i < bits.
func (r *Rank9) Get(i int) (bool, error) {
	if i < 0 || i >= r.bits {
		return false, fmt.Errorf("rank9: get(%d) out of range [0,%d): %w", i, r.bits, ErrIndexOutOfRange)
	}
	word := r.buffer[i/64]
	return (word>>uint(i%64))&1 == 1, nil
}

// Rank1 returns the number of 1-bits in positions [0, i). Precondition
// 0 <= i <= bits. O(1).
func (r *Rank9) Rank1(i int) (int, error) {
	if i < 0 || i > r.bits {
		return 0, fmt.Errorf("rank9: rank1(%d) out of range [0,%d]: %w", i, r.bits, ErrIndexOutOfRange)
	}
	if i == r.bits {
		return r.ones, nil
	}
	word := i / 64
	bitIdx := i % 64
	block := word / wordsPerBlock
	blockWord := word % wordsPerBlock

	c := r.counts[block]
	wordRank := 0
	if blockWord > 0 {
		wordRank = c.wordRank(blockWord - 1)
	}

	var masked uint64
	if bitIdx > 0 {
		masked = r.buffer[word] & (uint64(1)<<uint(bitIdx) - 1)
	}

	return int(c.blockRank) + wordRank + bits.OnesCount64(masked), nil
}

// Rank0 returns the number of 0-bits in positions [0, i). Precondition
// 0 <= i <= bits. O(1).
func (r *Rank9) Rank0(i int) (int, error) {
	ones, err := r.Rank1(i)
	if err != nil {
		return 0, err
	}
	return i - ones, nil
}

// blockCumRank returns the comparator value used by Select's binary
// search: block_rank directly for bit == true, and the complementary
// rank (64*8*block - block_rank) for bit == false.
func (r *Rank9) blockCumRank(block int, bit bool) int {
	if bit {
		return int(r.counts[block].blockRank)
	}
	return bitsPerBlock*block - int(r.counts[block].blockRank)
}

// blockTotalOnes returns the number of 1-bits within block (not
// cumulative), derived in O(1) from the stored word_rank(6) plus one
// more popcount of the block's last word.
func (r *Rank9) blockTotalOnes(block int) int {
	c := r.counts[block]
	last := r.buffer[block*wordsPerBlock+wordsPerBlock-1]
	return c.wordRank(wordsPerBlock-2) + bits.OnesCount64(last)
}

// countUpToWord returns the number of bit-valued bits within words
// [0, w] of the block (w in [0,7]).
func (r *Rank9) countUpToWord(block, w int, bit bool) int {
	c := r.counts[block]
	if w == wordsPerBlock-1 {
		total := r.blockTotalOnes(block)
		if bit {
			return total
		}
		return bitsPerBlock - total
	}
	ones := c.wordRank(w)
	if bit {
		return ones
	}
	return 64*(w+1) - ones
}

// Select returns the position one past the n-th occurrence of bit
// within the vector (see bitvector.BitVector.Select for the full
// convention). Select(bit, 0) == 0.
func (r *Rank9) Select(bit bool, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("rank9: select(n=%d) negative count: %w", n, ErrCountExhausted)
	}
	if cached, ok := r.cache.get(bit, n); ok {
		return cached, nil
	}

	nBlocks := len(r.counts)
	idx := sort.Search(nBlocks, func(i int) bool {
		return r.blockCumRank(i, bit) >= n
	})
	if idx == 0 {
		// n <= blockCumRank(0) == 0, impossible for n >= 1.
		return 0, fmt.Errorf("rank9: select(bit=%v, n=%d): %w", bit, n, ErrCountExhausted)
	}
	block := idx - 1

	remaining := n - r.blockCumRank(block, bit)

	wordIdx := wordsPerBlock - 1
	for w := 0; w < wordsPerBlock-1; w++ {
		if r.countUpToWord(block, w, bit) >= remaining {
			wordIdx = w
			break
		}
	}
	wordRemaining := remaining
	if wordIdx > 0 {
		wordRemaining = remaining - r.countUpToWord(block, wordIdx-1, bit)
	}

	word := r.buffer[block*wordsPerBlock+wordIdx]
	p, err := broadword.Select(word, bit, wordRemaining)
	if err != nil {
		return 0, fmt.Errorf("rank9: select(bit=%v, n=%d): %w", bit, n, ErrCountExhausted)
	}

	pos := bitsPerBlock*block + 64*wordIdx + p + 1
	if pos > r.bits {
		// The match lies in the zero padding past the end of the vector.
		return 0, fmt.Errorf("rank9: select(bit=%v, n=%d) exceeds available bits: %w", bit, n, ErrCountExhausted)
	}
	r.cache.put(bit, n, pos)
	return pos, nil
}

// SelectAll answers |ns| select queries in one pass, exploiting the
// monotonicity of select: ns must be sorted ascending. Each half is
// resolved by recursively narrowing the block-index window the binary
// search considers, giving O(|ns| * log(N/|ns|)) total work instead of
// O(|ns| * log N) independent queries. Safe to call concurrently from
// multiple goroutines over the same Rank9.
func (r *Rank9) SelectAll(bit bool, ns []int) ([]int, error) {
	out := make([]int, len(ns))
	if err := r.selectAllWindow(bit, ns, out, 0, len(r.counts)); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Rank9) selectAllWindow(bit bool, ns []int, out []int, lo, hi int) error {
	if len(ns) == 0 {
		return nil
	}
	mid := len(ns) / 2
	n := ns[mid]
	if n == 0 {
		out[mid] = 0
	} else {
		idx := lo + sort.Search(hi-lo, func(i int) bool {
			return r.blockCumRank(lo+i, bit) >= n
		})
		if idx == lo {
			return fmt.Errorf("rank9: select_all(bit=%v, n=%d): %w", bit, n, ErrCountExhausted)
		}
		block := idx - 1
		remaining := n - r.blockCumRank(block, bit)

		wordIdx := wordsPerBlock - 1
		for w := 0; w < wordsPerBlock-1; w++ {
			if r.countUpToWord(block, w, bit) >= remaining {
				wordIdx = w
				break
			}
		}
		wordRemaining := remaining
		if wordIdx > 0 {
			wordRemaining = remaining - r.countUpToWord(block, wordIdx-1, bit)
		}
		word := r.buffer[block*wordsPerBlock+wordIdx]
		p, err := broadword.Select(word, bit, wordRemaining)
		if err != nil {
			return fmt.Errorf("rank9: select_all(bit=%v, n=%d): %w", bit, n, ErrCountExhausted)
		}
		out[mid] = bitsPerBlock*block + 64*wordIdx + p + 1
		if out[mid] > r.bits {
			return fmt.Errorf("rank9: select_all(bit=%v, n=%d) exceeds available bits: %w", bit, n, ErrCountExhausted)
		}
		// Narrow: everything left of mid selects within [lo, idx];
		// everything right of mid selects within [idx-1, hi].
		if err := r.selectAllWindow(bit, ns[:mid], out[:mid], lo, idx); err != nil {
			return err
		}
		return r.selectAllWindow(bit, ns[mid+1:], out[mid+1:], block, hi)
	}
	if err := r.selectAllWindow(bit, ns[:mid], out[:mid], lo, hi); err != nil {
		return err
	}
	return r.selectAllWindow(bit, ns[mid+1:], out[mid+1:], lo, hi)
}
