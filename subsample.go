package word2vec

import "math"

// Subsampler computes and applies per-word keep-probabilities for
// frequent-word downsampling, controlled by the sample threshold t.
type Subsampler struct {
	sample float64
}

// NewSubsampler returns a Subsampler for threshold t. t == 0 disables
// subsampling (every word is always kept).
func NewSubsampler(t float64) *Subsampler {
	return &Subsampler{sample: t}
}

// PrecalcKeepProb computes and stores keep_prob(w) for every word in
// v, per the formula in the data model:
//
//	keep_prob(w) = 1                                         if t == 0
//	keep_prob(w) = min(1, (sqrt(f_w/t)+1)*(t/f_w))            otherwise
//
// where f_w = count_w / total_count.
func (s *Subsampler) PrecalcKeepProb(v *Vocab) {
	if s.sample <= 0 {
		for i := range v.entries {
			v.entries[i].keepProb = 1
		}
		return
	}
	total := float64(v.TotalCount())
	for i := 0; i < v.CountedLen(); i++ {
		f := float64(v.entries[i].count) / total
		prob := (math.Sqrt(f/s.sample) + 1) * (s.sample / f)
		if prob > 1 {
			prob = 1
		}
		v.entries[i].keepProb = float32(prob)
	}
	if v.nullWord {
		v.entries[len(v.entries)-1].keepProb = 1
	}
}

// Keep reports whether one occurrence of word id should be retained,
// drawing from rng only when keepProb is not exactly 1 (the spec's
// "skip the RNG call when keep_prob == 1" optimisation).
func (s *Subsampler) Keep(v *Vocab, id WordId, rng func() float32) bool {
	p := v.entries[id].keepProb
	if p >= 1 {
		return true
	}
	return rng() < p
}
