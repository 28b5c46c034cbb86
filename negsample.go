package word2vec

// negSampleDomain is the fixed range cum_table values are scaled
// into; its top value is always exactly domain, per the data model.
const negSampleDomain = 1<<31 - 1

// NegativeSampler draws frequency^0.75-weighted noise word indices
// for the negative-sampling loss. Built once, after vocabulary
// pruning, from the final word counts.
type NegativeSampler struct {
	cumTable []uint32 // monotone, cumTable[len-1] == negSampleDomain
}

// BuildNegativeSampler constructs the cumulative table over v's
// counted words (excluding the null word, which is never sampled as
// noise).
func BuildNegativeSampler(v *Vocab) *NegativeSampler {
	n := v.CountedLen()
	table := make([]uint32, n)
	if n == 0 {
		return &NegativeSampler{cumTable: table}
	}

	var z float64
	pow := make([]float64, n)
	for i := 0; i < n; i++ {
		pow[i] = powFreq(v.entries[i].count)
		z += pow[i]
	}
	var cumulative float64
	for i := 0; i < n; i++ {
		cumulative += pow[i] / z
		table[i] = uint32(cumulative*float64(negSampleDomain) + 0.5)
	}
	table[n-1] = negSampleDomain
	return &NegativeSampler{cumTable: table}
}

func powFreq(count uint64) float64 {
	// count^0.75 computed via a dedicated helper so callers never have
	// to remember the exponent literal.
	return pow075(float64(count))
}

// Sample draws a single noise index by picking a uniform integer in
// [0, domain) and finding the smallest cumulative-table slot whose
// value is >= it, via a manual binary search (rather than a
// sort.Search closure) to keep the hot path allocation-free.
func (s *NegativeSampler) Sample(r uint32) WordId {
	lo, hi := 0, len(s.cumTable)
	for lo < hi {
		mid := lo + (hi-lo)>>1
		if s.cumTable[mid] < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(s.cumTable) {
		lo = len(s.cumTable) - 1
	}
	return WordId(lo)
}

// SampleNoise draws k indices distinct from target and from each
// other within this call (the target word is allowed to reappear as
// noise across different calls, just not within one). rng supplies
// uniform draws in [0, domain).
func (s *NegativeSampler) SampleNoise(target WordId, k int, rng func(bound uint32) uint32) []WordId {
	domain := uint32(len(s.cumTable))
	if domain == 0 || len(s.cumTable) == 0 {
		return nil
	}
	top := s.cumTable[len(s.cumTable)-1]
	out := make([]WordId, 0, k)
	seen := map[WordId]bool{target: true}
	for len(out) < k {
		w := s.Sample(rng(top))
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
