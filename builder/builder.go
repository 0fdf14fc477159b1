// Package builder defines the generic incremental-construction protocol
// every succinct structure in this module is built through: push
// elements one at a time, then finish into an immutable result.
package builder

import (
	"errors"
	"fmt"
	"iter"
)

// ErrAlreadyFinished is returned when Finish is called more than once
// on the same builder.
var ErrAlreadyFinished = errors.New("builder: already finished")

// Builder accepts elements of type E one at a time and produces a
// result of type R on completion.
type Builder[E, R any] interface {
	Push(e E) error
	Finish() (R, error)
}

// Collect drains seq into b, pushing each element in turn, then
// finishes b and returns the result.
func Collect[E, R any](b Builder[E, R], seq iter.Seq[E]) (R, error) {
	for e := range seq {
		if err := b.Push(e); err != nil {
			var zero R
			return zero, err
		}
	}
	return b.Finish()
}

// WordBuilder accumulates 64-bit words into a growable buffer.
type WordBuilder struct {
	words    []uint64
	finished bool
}

// NewWordBuilder returns an empty WordBuilder.
func NewWordBuilder() *WordBuilder {
	return &WordBuilder{}
}

// Push appends a word to the buffer.
func (b *WordBuilder) Push(word uint64) error {
	if b.finished {
		return fmt.Errorf("word builder: push after finish: %w", ErrAlreadyFinished)
	}
	b.words = append(b.words, word)
	return nil
}

// Finish returns the accumulated words. It may be called only once.
func (b *WordBuilder) Finish() ([]uint64, error) {
	if b.finished {
		return nil, fmt.Errorf("word builder: finish called twice: %w", ErrAlreadyFinished)
	}
	b.finished = true
	return b.words, nil
}

// BitBuilder accepts single bits, packing them LSB-first into 64-bit
// words (to match the storage layout: logical bit i lives at bit i%64
// of word i/64, LSB of word 0 is bit 0) and forwarding full words to an
// inner WordBuilder.
type BitBuilder struct {
	inner    *WordBuilder
	current  uint64
	nbits    int // bits accumulated in current
	total    int // total bits pushed
	finished bool
}

// NewBitBuilder returns an empty BitBuilder backed by a fresh
// WordBuilder.
func NewBitBuilder() *BitBuilder {
	return &BitBuilder{inner: NewWordBuilder()}
}

// Push appends a single bit.
func (b *BitBuilder) Push(bit bool) error {
	if b.finished {
		return fmt.Errorf("bit builder: push after finish: %w", ErrAlreadyFinished)
	}
	if bit {
		b.current |= uint64(1) << uint(b.nbits)
	}
	b.nbits++
	b.total++
	if b.nbits == 64 {
		if err := b.inner.Push(b.current); err != nil {
			return err
		}
		b.current = 0
		b.nbits = 0
	}
	return nil
}

// BitBuilderResult is the finished payload of a BitBuilder: the packed
// words and the exact number of bits pushed.
type BitBuilderResult struct {
	Words []uint64
	Bits  int
}

// Finish flushes any partial word and returns the packed words plus
// the exact bit length.
func (b *BitBuilder) Finish() (BitBuilderResult, error) {
	if b.finished {
		return BitBuilderResult{}, fmt.Errorf("bit builder: finish called twice: %w", ErrAlreadyFinished)
	}
	b.finished = true
	if b.nbits > 0 {
		if err := b.inner.Push(b.current); err != nil {
			return BitBuilderResult{}, err
		}
	}
	words, err := b.inner.Finish()
	if err != nil {
		return BitBuilderResult{}, err
	}
	return BitBuilderResult{Words: words, Bits: b.total}, nil
}

// Pair fans a single pushed element out to two independent builders,
// used by structures (like Rank9) that record both a bit stream and an
// auxiliary index from the same source in one pass.
type Pair[E, R1, R2 any] struct {
	first  Builder[E, R1]
	second Builder[E, R2]
}

// NewPair returns a builder that forwards every pushed element to both
// first and second.
func NewPair[E, R1, R2 any](first Builder[E, R1], second Builder[E, R2]) *Pair[E, R1, R2] {
	return &Pair[E, R1, R2]{first: first, second: second}
}

// Push forwards e to both inner builders.
func (p *Pair[E, R1, R2]) Push(e E) error {
	if err := p.first.Push(e); err != nil {
		return err
	}
	return p.second.Push(e)
}

// PairResult holds both inner builders' finished results.
type PairResult[R1, R2 any] struct {
	First  R1
	Second R2
}

// Finish finishes both inner builders and returns their results.
func (p *Pair[E, R1, R2]) Finish() (PairResult[R1, R2], error) {
	r1, err := p.first.Finish()
	if err != nil {
		var zero PairResult[R1, R2]
		return zero, err
	}
	r2, err := p.second.Finish()
	if err != nil {
		var zero PairResult[R1, R2]
		return zero, err
	}
	return PairResult[R1, R2]{First: r1, Second: r2}, nil
}
