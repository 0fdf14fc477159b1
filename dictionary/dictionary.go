// Package dictionary defines the capability interfaces shared by every
// succinct structure in this module: bit vectors, Rank9, and wavelet
// trees all satisfy some subset of these.
//
// The interfaces are intentionally small and orthogonal (Access, Rank
// and Select have one method each) so a wavelet tree node can be generic over "anything that can
// rank and access bits" without caring whether the concrete type is a
// plain bit vector or an indexed Rank9.
package dictionary

// Access returns the element at position i.
type Access[T any] interface {
	Get(i int) (T, error)
}

// Rank counts occurrences of sym in positions [0, i).
type Rank[T any] interface {
	Rank(sym T, i int) (int, error)
}

// Select returns the position of the n-th occurrence of sym, using the
// convention fixed by this module: n >= 1 selects the n-th occurrence
// and the returned position is one past it (see bitvector.BitVector.Select
// for the worked example); Select(sym, 0) returns 0 as a sentinel.
type Select[T any] interface {
	Select(sym T, n int) (int, error)
}

// BitRank specializes Rank for sequences over {0, 1}: callers working
// with bits usually want both rank0 and rank1, and computing one from
// the other (rank0(i) = i - rank1(i)) is cheap enough to expose
// directly rather than forcing two calls through Rank[bool].
type BitRank interface {
	Rank1(i int) (int, error)
	Rank0(i int) (int, error)
}

// BitDictionary is the contract a wavelet tree node requires of its
// per-level storage: get a bit, rank bits, select bits, and report its
// own length. bitvector.BitVector and rank9.Rank9 both satisfy it.
type BitDictionary interface {
	Access[bool]
	BitRank
	Select[bool]
	Len() int
}

// Symbol is a bit-iterable fixed-width value. Wavelet tree queries take
// a Symbol so they can walk its bits MSB-first without the caller
// pre-splitting it.
type Symbol interface {
	// Width reports the number of meaningful bits, matching the
	// wavelet tree's fixed symbol width w.
	Width() int
	// Bit returns the k-th bit MSB-first: Bit(0) is the most
	// significant bit among the low Width() bits.
	Bit(k int) bool
}
