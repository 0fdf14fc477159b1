package rank9

// counts holds the two-level index for one basic block (8 consecutive
// 64-bit words, 512 bits): blockRank is the number of 1-bits strictly
// preceding the block, and wordRanks packs seven 9-bit fields holding
// the running block-local popcount after each of the block's first
// seven words (field k holds the rank up to and including word k, for
// k in [0,6]; the rank after word 7 is the start of the next block and
// isn't stored separately).
type counts struct {
	blockRank uint64
	wordRanks uint64
}

// wordRank returns the number of 1-bits in words [0, k] of the block,
// for k in [0, 6].
func (c counts) wordRank(k int) int {
	return int((c.wordRanks >> uint(9*k)) & 0x1FF)
}

// pushWord folds the running block-local popcount after a block's word
// into the accumulator. The caller invokes this once per word for the
// block's first seven words only (the eighth word's rank is the start
// of the next block and isn't stored separately); after the seventh
// call the accumulator holds word_rank(0..6) for the block.
func (c *counts) pushWord(blockAccum uint64) {
	c.wordRanks >>= 9
	c.wordRanks |= blockAccum << (9 * 6)
}
