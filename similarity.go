package word2vec

import (
	"container/heap"
	"math"
)

// SimilarityIndex answers nearest-neighbour and analogy queries over
// a WeightStore's W_in matrix, ported from original_source's
// Word2Vec.most_similar / most_similar_cosmul / doesnt_match /
// similarity — as loops over float32 rather than vectorised numpy
// calls, with an explicit lazily-built L2-normalised cache rather than
// normalising in place on first use.
type SimilarityIndex struct {
	vocab *Vocab
	ws    *WeightStore

	norm [][]float32 // lazily filled; norm[id] is the unit vector for id
}

// NewSimilarityIndex wraps vocab/ws. The normalised matrix is built
// lazily on first query, not at construction time.
func NewSimilarityIndex(vocab *Vocab, ws *WeightStore) *SimilarityIndex {
	return &SimilarityIndex{vocab: vocab, ws: ws}
}

func (s *SimilarityIndex) ensureNorm() {
	if s.norm != nil {
		return
	}
	n := s.ws.WIn.Rows()
	s.norm = make([][]float32, n)
	for i := 0; i < n; i++ {
		row := s.ws.WIn.Row(WordId(i))
		s.norm[i] = l2Normalize(row)
	}
}

func l2Normalize(row []float32) []float32 {
	var sumSq float64
	for _, v := range row {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	out := make([]float32, len(row))
	if norm == 0 {
		copy(out, row)
		return out
	}
	inv := float32(1 / norm)
	for i, v := range row {
		out[i] = v * inv
	}
	return out
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// candidate vector: either a vocabulary word (resolved against the
// normalised matrix) or a caller-supplied raw vector (normalised on
// the spot), matching the data model's "v may be a vocabulary word or
// a caller-supplied vector" clause for most_similar's positive/negative lists.
type WeightedWord struct {
	Word   string  // vocabulary word; ignored if Vector is non-nil
	Vector []float32
}

func (s *SimilarityIndex) resolve(w WeightedWord) ([]float32, WordId, bool, error) {
	if w.Vector != nil {
		return l2Normalize(w.Vector), 0, false, nil
	}
	id, ok := s.vocab.IdOf(w.Word)
	if !ok {
		return nil, 0, false, ErrOutOfVocabulary
	}
	return s.norm[id], id, true, nil
}

// scored is one candidate result, used by both most_similar variants.
type scored struct {
	id    WordId
	score float32
}

// Scored is one most_similar/most_similar_cosmul result exposed to
// callers outside the package: the candidate word and its score.
type Scored struct {
	Word  string
	Score float32
}

func (s *SimilarityIndex) toScored(in []scored) []Scored {
	out := make([]Scored, len(in))
	for i, c := range in {
		out[i] = Scored{Word: s.vocab.StringOf(c.id), Score: c.score}
	}
	return out
}

// topNHeap is a fixed-capacity min-heap over scored keyed by score,
// used to keep only the topn highest-scoring candidates while
// streaming over the whole vocabulary instead of sorting it fully —
// an upgrade over the original's full argsort, justified because V
// can be large.
type topNHeap []scored

func (h topNHeap) Len() int            { return len(h) }
func (h topNHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h topNHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topNHeap) Push(x interface{}) { *h = append(*h, x.(scored)) }
func (h *topNHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// collectTopNOver streams ids in [0, bound) through score, keeping a
// bounded max-n min-heap of the strongest results and excluding any id
// for which score reports ok == false.
func collectTopNOver(bound int, n int, score func(id WordId) (float32, bool)) []scored {
	h := &topNHeap{}
	heap.Init(h)
	for i := 0; i < bound; i++ {
		id := WordId(i)
		val, ok := score(id)
		if !ok {
			continue
		}
		if h.Len() < n {
			heap.Push(h, scored{id: id, score: val})
			continue
		}
		if val > (*h)[0].score {
			(*h)[0] = scored{id: id, score: val}
			heap.Fix(h, 0)
		}
	}
	out := make([]scored, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(scored)
	}
	return out
}

// MostSimilar implements most_similar: m = sum of positive vectors
// minus sum of negative vectors, unit-normalised, scored by cosine
// against every vocabulary row, excluding the words named in positive
// and negative.
func (s *SimilarityIndex) MostSimilar(positive, negative []WeightedWord, topn int) ([]Scored, error) {
	s.ensureNorm()
	if len(positive)+len(negative) == 0 {
		return nil, ErrCannotCompareEmpty
	}
	dim := s.ws.Dim()
	mean := make([]float32, dim)
	exclude := make(map[WordId]bool)
	accumulate := func(words []WeightedWord, sign float32) error {
		for _, w := range words {
			v, id, isVocab, err := s.resolve(w)
			if err != nil {
				return err
			}
			if isVocab {
				exclude[id] = true
			}
			for d := range mean {
				mean[d] += sign * v[d]
			}
		}
		return nil
	}
	if err := accumulate(positive, 1); err != nil {
		return nil, err
	}
	if err := accumulate(negative, -1); err != nil {
		return nil, err
	}
	unit := l2Normalize(mean)

	n := s.vocab.CountedLen()
	results := collectTopNOver(n, topn, func(id WordId) (float32, bool) {
		if exclude[id] {
			return 0, false
		}
		return dot(unit, s.norm[id]), true
	})
	return s.toScored(results), nil
}

// MostSimilarCosmul implements most_similar_cosmul (3CosMul): score
// candidates by the product-of-cosines ratio rather than a linear
// combination, which empirically favours balancing multiple analogy
// terms over letting one dominate.
func (s *SimilarityIndex) MostSimilarCosmul(positive, negative []WeightedWord, topn int) ([]Scored, error) {
	s.ensureNorm()
	if len(positive)+len(negative) == 0 {
		return nil, ErrCannotCompareEmpty
	}
	exclude := make(map[WordId]bool)
	posVecs := make([][]float32, 0, len(positive))
	negVecs := make([][]float32, 0, len(negative))
	for _, w := range positive {
		v, id, isVocab, err := s.resolve(w)
		if err != nil {
			return nil, err
		}
		if isVocab {
			exclude[id] = true
		}
		posVecs = append(posVecs, v)
	}
	for _, w := range negative {
		v, id, isVocab, err := s.resolve(w)
		if err != nil {
			return nil, err
		}
		if isVocab {
			exclude[id] = true
		}
		negVecs = append(negVecs, v)
	}

	n := s.vocab.CountedLen()
	results := collectTopNOver(n, topn, func(id WordId) (float32, bool) {
		if exclude[id] {
			return 0, false
		}
		num := float32(1)
		for _, p := range posVecs {
			num *= (1 + dot(s.norm[id], p)) / 2
		}
		den := float32(1)
		for _, ng := range negVecs {
			den *= (1 + dot(s.norm[id], ng)) / 2
		}
		return num / (den + 1e-6), true
	})
	return s.toScored(results), nil
}

// DoesntMatch returns the word in words whose vector is furthest (on
// average) from the others, per original_source's doesnt_match.
func (s *SimilarityIndex) DoesntMatch(words []string) (string, error) {
	s.ensureNorm()
	if len(words) == 0 {
		return "", ErrCannotCompareEmpty
	}
	ids := make([]WordId, 0, len(words))
	for _, w := range words {
		id, ok := s.vocab.IdOf(w)
		if !ok {
			return "", ErrOutOfVocabulary
		}
		ids = append(ids, id)
	}
	dim := s.ws.Dim()
	mean := make([]float32, dim)
	for _, id := range ids {
		for d, v := range s.norm[id] {
			mean[d] += v
		}
	}
	inv := 1 / float32(len(ids))
	for d := range mean {
		mean[d] *= inv
	}
	unit := l2Normalize(mean)

	worst := ids[0]
	worstScore := float32(math.MaxFloat32)
	for _, id := range ids {
		sc := dot(unit, s.norm[id])
		if sc < worstScore {
			worstScore = sc
			worst = id
		}
	}
	return s.vocab.StringOf(worst), nil
}

// Similarity returns the cosine similarity between two vocabulary
// words.
func (s *SimilarityIndex) Similarity(a, b string) (float32, error) {
	s.ensureNorm()
	idA, ok := s.vocab.IdOf(a)
	if !ok {
		return 0, ErrOutOfVocabulary
	}
	idB, ok := s.vocab.IdOf(b)
	if !ok {
		return 0, ErrOutOfVocabulary
	}
	return dot(s.norm[idA], s.norm[idB]), nil
}
