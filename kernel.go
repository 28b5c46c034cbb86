package word2vec

// trainContext bundles the pieces an SGD kernel call needs beyond the
// two words it is updating: the shared weight matrices, the Huffman
// coder's output (for HS) and the negative sampler (for NEG). It is
// constructed once per worker and reused across every call; its
// gradient accumulator is reused, while the CBOW input sum and the
// negative-sampling draw are allocated per call.
type trainContext struct {
	ws       *WeightStore
	vocab    *Vocab
	neg      *NegativeSampler
	rng      *workerRand
	negK     int // negative samples per positive pair, 0 disables NEG
	useHS    bool
	learnV   bool // update W_in rows (learn_vectors)
	learnH   bool // update W_hs/W_neg rows (learn_hidden)
	cbowMean bool // divide CBOW's summed context by its size rather than leaving it summed

	// scratch is a worker-local accumulator reused across calls to
	// avoid allocating a gradient buffer per pair, mirroring the
	// teacher's pattern of hoisting per-call scratch state out of the
	// hot loop and into a long-lived worker object.
	scratch []float32
}

func newTrainContext(ws *WeightStore, vocab *Vocab, neg *NegativeSampler, rng *workerRand, negK int, useHS, learnV, learnH, cbowMean bool) *trainContext {
	return &trainContext{
		ws: ws, vocab: vocab, neg: neg, rng: rng,
		negK: negK, useHS: useHS, learnV: learnV, learnH: learnH, cbowMean: cbowMean,
		scratch: make([]float32, ws.Dim()),
	}
}

func (tc *trainContext) clearScratch() {
	for i := range tc.scratch {
		tc.scratch[i] = 0
	}
}

// hsUpdate accumulates the hierarchical-softmax gradient for input
// row x against target's Huffman path into tc.scratch, and — if
// learnHidden — updates the inner-node rows of W_hs directly. Returns
// nothing; the projection-row update is the caller's responsibility
// (SG updates x in place, CBOW distributes the accumulated gradient
// across every context word).
func (tc *trainContext) hsUpdate(x []float32, target WordId, alpha float32) {
	path := tc.vocab.HuffmanPath(target)
	code := tc.vocab.HuffmanCode(target)
	for i, inner := range path {
		row := tc.ws.WHS.Row(WordId(inner))
		var dot float32
		for d, xv := range x {
			dot += xv * row[d]
		}
		pred := fastSigmoid(dot)
		// label is 1 for a left branch (code bit 0), 0 for right.
		label := float32(1)
		if code[i] == 1 {
			label = 0
		}
		g := (label - pred) * alpha
		for d := range x {
			tc.scratch[d] += g * row[d]
		}
		if tc.learnH {
			for d, xv := range x {
				row[d] += g * xv
			}
		}
	}
}

// negUpdate accumulates the negative-sampling gradient for input row
// x against one positive target plus negK sampled noise words into
// tc.scratch, updating W_neg rows when learnHidden.
func (tc *trainContext) negUpdate(x []float32, target WordId, alpha float32) {
	noise := tc.neg.SampleNoise(target, tc.negK, tc.rng.Noise)
	tc.applyNegPair(x, target, 1, alpha)
	for _, w := range noise {
		tc.applyNegPair(x, w, 0, alpha)
	}
}

func (tc *trainContext) applyNegPair(x []float32, id WordId, label float32, alpha float32) {
	row := tc.ws.WNeg.Row(id)
	var dot float32
	for d, xv := range x {
		dot += xv * row[d]
	}
	pred := fastSigmoid(dot)
	g := (label - pred) * alpha
	for d := range x {
		tc.scratch[d] += g * row[d]
	}
	if tc.learnH {
		for d, xv := range x {
			row[d] += g * xv
		}
	}
}

// TrainPairSg runs one skip-gram (input, output) update: input is the
// centre word's W_in row id, output is the context word predicted.
// Dispatches to HS and/or NEG per the kernel's configuration and, if
// learnVectors, adds the accumulated gradient back onto W_in[input]
// directly — skip-gram has exactly one input row to update per call.
func (tc *trainContext) TrainPairSg(input, output WordId, alpha float32) {
	x := tc.ws.WIn.Row(input)
	tc.clearScratch()
	if tc.negK > 0 {
		tc.negUpdate(x, output, alpha)
	}
	if tc.useHS {
		tc.hsUpdate(x, output, alpha)
	}
	if tc.learnV && tc.ws.Lock[input] != 0 {
		for d := range x {
			x[d] += tc.scratch[d]
		}
	}
}

// TrainPairCbow runs one CBOW update: contextIds are summed into the
// hidden input (and averaged when cbowMean), output is the centre word
// predicted, and the
// resulting gradient (if learnVectors) is distributed back onto every
// unlocked row in contextIds equally, per the data model's CBOW
// update rule.
func (tc *trainContext) TrainPairCbow(contextIds []WordId, output WordId, alpha float32) {
	if len(contextIds) == 0 {
		return
	}
	dim := tc.ws.Dim()
	avg := make([]float32, dim)
	for _, id := range contextIds {
		row := tc.ws.WIn.Row(id)
		for d, v := range row {
			avg[d] += v
		}
	}
	if tc.cbowMean {
		inv := 1 / float32(len(contextIds))
		for d := range avg {
			avg[d] *= inv
		}
	}

	tc.clearScratch()
	if tc.negK > 0 {
		tc.negUpdate(avg, output, alpha)
	}
	if tc.useHS {
		tc.hsUpdate(avg, output, alpha)
	}
	if !tc.learnV {
		return
	}
	for _, id := range contextIds {
		if tc.ws.Lock[id] == 0 {
			continue
		}
		row := tc.ws.WIn.Row(id)
		for d := range row {
			row[d] += tc.scratch[d]
		}
	}
}
