package word2vec

import (
	"fmt"
	"math/rand"
)

// seededVector returns word's deterministic initial W_in row: the
// PRNG is seeded from a hash of "word" concatenated with the decimal
// seed (FNV-1a over the UTF-8 bytes, then mixed through mix64 — see
// hash.go), and the row is (U(0,1) - 0.5)/dim per element, matching
// the data model's W_in initialisation rule exactly.
//
// This is the one deterministic-hash decision the spec leaves open
// (design note §9): FNV-1a was picked because it is a stdlib-only,
// well-understood non-cryptographic hash with no external dependency,
// in keeping with the project's preference for a tiny self-contained
// mixer over pulling in a hashing library for a single call site.
func seededVector(word string, seed uint64, dim int) []float32 {
	key := word + fmt.Sprint(seed)
	h := mix64(stringHash(key))
	src := rand.New(rand.NewSource(int64(h)))
	out := make([]float32, dim)
	for i := range out {
		out[i] = float32(src.Float64()-0.5) / float32(dim)
	}
	return out
}

// workerRand is a worker-local PRNG stream used for reduced-window
// widths and negative-sampling noise draws. It is seeded once per
// worker from the global seed XOR the worker's index, kept entirely
// separate from seededVector's deterministic per-word stream (design
// note §9: the two PRNG needs must not share state).
type workerRand struct {
	r *rand.Rand
}

func newWorkerRand(seed uint64, workerID int) *workerRand {
	s := seed ^ uint64(workerID)
	return &workerRand{r: rand.New(rand.NewSource(int64(s)))}
}

// Reduced draws b in [0, window) for the reduced-window walk.
func (w *workerRand) Reduced(window int) int {
	if window <= 0 {
		return 0
	}
	return w.r.Intn(window)
}

// Noise draws a uniform uint32 in [0, bound).
func (w *workerRand) Noise(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	return uint32(w.r.Int63n(int64(bound)))
}

// Float32 draws a uniform float32 in [0, 1), used by the subsampler.
func (w *workerRand) Float32() float32 {
	return float32(w.r.Float64())
}
