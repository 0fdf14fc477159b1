// Command succinctbench exercises Rank9 and the wavelet tree at scale,
// reporting build time and average query latency for rank, select, and
// select_all. It is a diagnostic tool, not a persisted artifact or wire
// format: no flags beyond -bits, -queries and -seed, no output format to keep
// stable across versions.
package main

import (
	"flag"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/xflash-panda/succinct/builder"
	"github.com/xflash-panda/succinct/rank9"
	"github.com/xflash-panda/succinct/wavelet"
)

func main() {
	bitLen := flag.Int("bits", 10_000_000, "number of bits in the benchmark vector")
	queries := flag.Int("queries", 100_000, "number of select queries to issue")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	log.Printf("building rank9 over %d bits", *bitLen)
	r, ones := buildRank9(*bitLen, *seed)
	log.Printf("built: %d ones", ones)

	benchRank(r, *bitLen)
	benchSelect(r, ones, *queries, *seed)
	benchSelectAll(r, ones, *queries, *seed)
	benchWavelet(*bitLen, *seed)
}

func buildRank9(bitLen int, seed int64) (*rank9.Rank9, int) {
	rng := rand.New(rand.NewSource(seed))
	b := rank9.NewBuilder(rank9.WithQueryCache(4096))
	ones := 0
	start := time.Now()
	for i := 0; i < bitLen; i++ {
		bit := rng.Intn(2) == 1
		if bit {
			ones++
		}
		if err := b.Push(bit); err != nil {
			log.Fatalf("push: %v", err)
		}
	}
	r, err := b.Finish()
	if err != nil {
		log.Fatalf("finish: %v", err)
	}
	log.Printf("build took %s", time.Since(start))
	return r, ones
}

func benchRank(r *rank9.Rank9, bitLen int) {
	rng := rand.New(rand.NewSource(1))
	const n = 1_000_000
	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := r.Rank1(rng.Intn(bitLen + 1)); err != nil {
			log.Fatalf("rank1: %v", err)
		}
	}
	log.Printf("rank1: %s/op", time.Since(start)/n)
}

func benchSelect(r *rank9.Rank9, ones, queries int, seed int64) {
	if ones == 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed + 1))
	start := time.Now()
	for i := 0; i < queries; i++ {
		if _, err := r.Select(true, 1+rng.Intn(ones)); err != nil {
			log.Fatalf("select: %v", err)
		}
	}
	log.Printf("select: %s/op", time.Since(start)/time.Duration(queries))
}

func benchSelectAll(r *rank9.Rank9, ones, queries int, seed int64) {
	if ones == 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed + 2))
	ns := make([]int, queries)
	for i := range ns {
		ns[i] = 1 + rng.Intn(ones)
	}
	sort.Ints(ns)
	start := time.Now()
	if _, err := r.SelectAll(true, ns); err != nil {
		log.Fatalf("select_all: %v", err)
	}
	log.Printf("select_all(%d queries): %s total, %s/op", queries, time.Since(start), time.Since(start)/time.Duration(queries))
}

func benchWavelet(bitLen int, seed int64) {
	const width = 8
	n := bitLen / width
	if n <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed + 3))
	b := wavelet.NewBuilder[wavelet.Symbol, *rank9.Rank9](width, func() builder.Builder[bool, *rank9.Rank9] {
		return rank9.NewBuilder()
	})

	start := time.Now()
	for i := 0; i < n; i++ {
		v := uint64(rng.Intn(1 << width))
		if err := b.Push(wavelet.NewSymbol(v, width)); err != nil {
			log.Fatalf("wavelet push: %v", err)
		}
	}
	tr, err := b.Finish()
	if err != nil {
		log.Fatalf("wavelet finish: %v", err)
	}
	log.Printf("wavelet build over %d symbols (width %d): %s", n, width, time.Since(start))

	start = time.Now()
	const queries = 100_000
	for i := 0; i < queries; i++ {
		if _, err := tr.Access(rng.Intn(n)); err != nil {
			log.Fatalf("wavelet access: %v", err)
		}
	}
	log.Printf("wavelet access: %s/op", time.Since(start)/queries)
}
