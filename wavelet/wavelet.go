// Package wavelet implements a wavelet tree: a recursive bit-plane
// decomposition of a fixed-width-symbol sequence that lifts rank,
// select, and access from bits (any type satisfying
// dictionary.BitDictionary) to arbitrary symbols.
//
// Given a sequence S of width-w symbols, the root holds a bit vector of
// length |S| whose i-th bit is the MSB of S[i]; positions with MSB 0
// recurse into the left child (paired with their remaining w-1 bits),
// positions with MSB 1 recurse into the right. Each internal node is
// itself just a BitDictionary, so the whole tree is generic over the
// underlying dictionary implementation: build over bitvector.BitVector
// for a small, linear-time tree, or over rank9.Rank9 for O(1)-per-level
// rank and O(log log n)-per-level select.
package wavelet

import (
	"errors"
	"fmt"

	"github.com/xflash-panda/succinct/builder"
	"github.com/xflash-panda/succinct/dictionary"
	"github.com/xflash-panda/succinct/tree"
)

// ErrShapeMismatch is returned when a symbol's width disagrees with the
// tree's fixed depth, or when Access/SymbolEq find the tree shorter than
// the symbol width. A symbol that doesn't occur is not a shape
// mismatch: Rank returns 0 and Select returns ErrCountExhausted.
var ErrShapeMismatch = errors.New("wavelet: shape mismatch")

// ErrIndexOutOfRange is returned when a query position falls outside
// the tree's sequence length.
var ErrIndexOutOfRange = errors.New("wavelet: index out of range")

// ErrCountExhausted is returned by Select when n exceeds the number of
// occurrences of the requested symbol.
var ErrCountExhausted = errors.New("wavelet: select count exhausted")

// Tree is an immutable wavelet tree over symbols of type S, with each
// level's bit-plane stored in a dictionary of type D.
type Tree[S dictionary.Symbol, D dictionary.BitDictionary] struct {
	root  *tree.Node[D]
	width int
}

// Len returns the number of symbols the tree was built over.
func (t *Tree[S, D]) Len() int {
	return t.root.Value.Len()
}

func branchFor(bit bool) tree.Branch {
	if bit {
		return tree.Right
	}
	return tree.Left
}

// Access reconstructs the symbol at position i by descending one level
// per bit, reading node.Get(i) and re-entering with
// i := node.Rank(bit, i).
func (t *Tree[S, D]) Access(i int) (Symbol, error) {
	n := t.root
	idx := i
	var acc uint64
	for d := 0; d < t.width; d++ {
		bit, err := n.Value.Get(idx)
		if err != nil {
			return Symbol{}, fmt.Errorf("wavelet: access(%d) at depth %d: %w", i, d, ErrIndexOutOfRange)
		}
		acc <<= 1
		if bit {
			acc |= 1
			idx, err = n.Value.Rank1(idx)
		} else {
			idx, err = n.Value.Rank0(idx)
		}
		if err != nil {
			return Symbol{}, err
		}
		if d == t.width-1 {
			break
		}
		child := n.Child(branchFor(bit))
		if child == nil {
			return Symbol{}, fmt.Errorf("wavelet: access(%d): tree shorter than symbol width: %w", i, ErrShapeMismatch)
		}
		n = child
	}
	return NewSymbol(acc, t.width), nil
}

// Rank returns the number of occurrences of sym in positions [0, i).
// If sym never occurs (a branch the tree never built), Rank returns 0
// rather than an error: an absent occurrence is not a shape mismatch.
func (t *Tree[S, D]) Rank(sym S, i int) (int, error) {
	if sym.Width() != t.width {
		return 0, fmt.Errorf("wavelet: rank: symbol width %d != tree width %d: %w", sym.Width(), t.width, ErrShapeMismatch)
	}
	n := t.root
	idx := i
	for d := 0; d < t.width; d++ {
		bit := sym.Bit(d)
		var err error
		if bit {
			idx, err = n.Value.Rank1(idx)
		} else {
			idx, err = n.Value.Rank0(idx)
		}
		if err != nil {
			return 0, fmt.Errorf("wavelet: rank(%d) at depth %d: %w", i, d, ErrIndexOutOfRange)
		}
		if d == t.width-1 {
			break
		}
		child := n.Child(branchFor(bit))
		if child == nil {
			return 0, nil
		}
		n = child
	}
	return idx, nil
}

// Select returns the position one past the n-th occurrence of sym
// (Select(sym, 0) == 0), by first descending to the leaf for sym while
// recording each level's node and chosen bit, then bubbling back up
// converting n through each level's Select in reverse.
func (t *Tree[S, D]) Select(sym S, n int) (int, error) {
	if sym.Width() != t.width {
		return 0, fmt.Errorf("wavelet: select: symbol width %d != tree width %d: %w", sym.Width(), t.width, ErrShapeMismatch)
	}
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("wavelet: select(n=%d) negative count: %w", n, ErrCountExhausted)
	}

	type step struct {
		node *tree.Node[D]
		bit  bool
	}
	path := make([]step, 0, t.width)

	node := t.root
	for d := 0; d < t.width; d++ {
		bit := sym.Bit(d)
		path = append(path, step{node: node, bit: bit})
		if d == t.width-1 {
			break
		}
		child := node.Child(branchFor(bit))
		if child == nil {
			return 0, fmt.Errorf("wavelet: select(n=%d): symbol does not occur: %w", n, ErrCountExhausted)
		}
		node = child
	}

	cur := n
	for i := len(path) - 1; i >= 0; i-- {
		var err error
		cur, err = path[i].node.Value.Select(path[i].bit, cur)
		if err != nil {
			return 0, fmt.Errorf("wavelet: select(n=%d): %w", n, ErrCountExhausted)
		}
	}
	return cur, nil
}

// SymbolEq reports whether the symbol at position i equals sym, without
// fully reconstructing it: it short-circuits as soon as a level's bit
// disagrees with sym's.
func (t *Tree[S, D]) SymbolEq(sym S, i int) (bool, error) {
	if sym.Width() != t.width {
		return false, fmt.Errorf("wavelet: symbol_eq: symbol width %d != tree width %d: %w", sym.Width(), t.width, ErrShapeMismatch)
	}
	n := t.root
	idx := i
	for d := 0; d < t.width; d++ {
		got, err := n.Value.Get(idx)
		if err != nil {
			return false, fmt.Errorf("wavelet: symbol_eq(%d) at depth %d: %w", i, d, ErrIndexOutOfRange)
		}
		want := sym.Bit(d)
		if got != want {
			return false, nil
		}
		if got {
			idx, err = n.Value.Rank1(idx)
		} else {
			idx, err = n.Value.Rank0(idx)
		}
		if err != nil {
			return false, err
		}
		if d == t.width-1 {
			break
		}
		child := n.Child(branchFor(got))
		if child == nil {
			return false, fmt.Errorf("wavelet: symbol_eq(%d): tree shorter than symbol width: %w", i, ErrShapeMismatch)
		}
		n = child
	}
	return true, nil
}

// Builder constructs a Tree incrementally from a stream of fixed-width
// symbols. Each node gets its own per-node dictionary builder from
// newBuilder, created lazily on first visit: the wavelet tree doesn't
// know or care whether that factory produces bitvector.Builder or
// rank9.Builder values.
type Builder[S dictionary.Symbol, D dictionary.BitDictionary] struct {
	width      int
	newBuilder func() builder.Builder[bool, D]
	root       *tree.Node[builder.Builder[bool, D]]
	cursor     *tree.CursorMut[builder.Builder[bool, D]]
}

// NewBuilder returns an empty wavelet-tree Builder for symbols of the
// given bit width, using newBuilder to create each node's per-level bit
// vector builder.
func NewBuilder[S dictionary.Symbol, D dictionary.BitDictionary](width int, newBuilder func() builder.Builder[bool, D]) *Builder[S, D] {
	root := tree.Singleton(newBuilder())
	return &Builder[S, D]{
		width:      width,
		newBuilder: newBuilder,
		root:       root,
		cursor:     tree.NewCursorMut(root),
	}
}

// Push appends one symbol to the stream being built.
func (b *Builder[S, D]) Push(sym S) error {
	if sym.Width() != b.width {
		return fmt.Errorf("wavelet: push: symbol width %d != tree width %d: %w", sym.Width(), b.width, ErrShapeMismatch)
	}
	defer b.cursor.BackToRoot()

	for d := 0; d < b.width; d++ {
		bit := sym.Bit(d)
		if err := b.cursor.Current().Value.Push(bit); err != nil {
			return err
		}
		if d == b.width-1 {
			break
		}
		b.cursor.StepOrCreate(branchFor(bit), b.newBuilder)
	}
	return nil
}

// Finish traverses the tree once, replacing every node's builder with
// its finished dictionary, and returns the built Tree.
func (b *Builder[S, D]) Finish() (*Tree[S, D], error) {
	finished, err := tree.ConsumeMap(b.root, func(nb builder.Builder[bool, D]) (D, error) {
		return nb.Finish()
	})
	if err != nil {
		var zero *Tree[S, D]
		return zero, err
	}
	return &Tree[S, D]{root: finished, width: b.width}, nil
}
