package word2vec

import (
	"github.com/golang/glog"
)

// WordId is a dense 0-based index into the vocabulary's word and
// weight-matrix rows.
type WordId uint32

// nullWordToken is the synthetic padding word appended when
// Config.NullWord is set. It is never predicted, never Huffman-coded
// and never drawn as negative-sampling noise.
const nullWordToken = "\x00"

// wordEntry holds the per-word metadata described in the data model:
// surface form, raw count, dense index, subsampling keep-probability
// and (once HuffmanCoder has run) Huffman code/path.
type wordEntry struct {
	word       string
	count      uint64
	index      WordId
	keepProb   float32
	huffCode   []uint8  // bit per inner node crossed, root to leaf
	huffPath   []uint32 // inner-node indices crossed, root to leaf
}

// Vocab is the pruned, indexed vocabulary built from a corpus. It owns
// per-word metadata but not weight matrices (see WeightStore) nor
// Huffman/negative-sampling structures beyond what is attached to each
// wordEntry.
type Vocab struct {
	entries  []wordEntry
	index    *vocabIndex
	nullWord bool
}

// Len returns the number of in-vocabulary words, including the null
// word if enabled. This is V in the data model.
func (v *Vocab) Len() int { return len(v.entries) }

// CountedLen returns the number of words that participate in
// prediction, i.e. V excluding the optional null word.
func (v *Vocab) CountedLen() int {
	if v.nullWord {
		return len(v.entries) - 1
	}
	return len(v.entries)
}

// IdOf returns the dense index of word and true, or (0, false) if word
// is not in the vocabulary.
func (v *Vocab) IdOf(word string) (WordId, bool) {
	return v.index.find(word)
}

// StringOf returns the surface form for id. id must be a value
// previously returned by IdOf or be < v.Len().
func (v *Vocab) StringOf(id WordId) string {
	return v.entries[id].word
}

// Count returns the raw training-corpus count for id.
func (v *Vocab) Count(id WordId) uint64 {
	return v.entries[id].count
}

// KeepProb returns the subsampling keep-probability for id.
func (v *Vocab) KeepProb(id WordId) float32 {
	return v.entries[id].keepProb
}

// HuffmanCode and HuffmanPath return the Huffman code bits and
// inner-node path for id, root to leaf, once BuildHuffmanCodes has
// run. Both are nil before that.
func (v *Vocab) HuffmanCode(id WordId) []uint8  { return v.entries[id].huffCode }
func (v *Vocab) HuffmanPath(id WordId) []uint32 { return v.entries[id].huffPath }

// TotalCount returns the sum of raw counts of in-vocabulary words
// (excluding the null word), used by the subsampler to turn counts
// into frequencies.
func (v *Vocab) TotalCount() uint64 {
	var total uint64
	for i := 0; i < v.CountedLen(); i++ {
		total += v.entries[i].count
	}
	return total
}

// Sentence is one tokenised sentence from a corpus.
type Sentence []string

// Corpus produces a (possibly single-pass) sequence of sentences. See
// corpus.go for concrete implementations and RepeatCorpusNTimes.
type Corpus interface {
	// Sentences returns a channel yielding every sentence in one pass.
	// The channel is closed when the pass completes. Implementations
	// that are genuinely single-pass (e.g. reading from a pipe) must
	// return the same exhausted result on a second call; callers that
	// need multiple passes over such a source must wrap it in
	// RepeatCorpusNTimes first.
	Sentences() <-chan Sentence
}

// Restartable corpora additionally report whether calling Sentences
// again yields a fresh, independent pass.
type Restartable interface {
	Corpus
	Restartable() bool
}

func isRestartable(c Corpus) bool {
	if r, ok := c.(Restartable); ok {
		return r.Restartable()
	}
	return false
}

// BuildVocabulary makes one pass over corpus, counts word frequencies,
// prunes words with count < minCount, and assigns each survivor a
// dense, stable (but arbitrarily ordered) index. If nullWord is set, a
// synthetic padding word is appended at the end.
//
// Returns ErrEmptyCorpus if no sentence is seen at all, and
// ErrEmptyVocabulary if every word is pruned.
func BuildVocabulary(corpus Corpus, minCount uint64, nullWord bool) (*Vocab, error) {
	counts := make(map[string]uint64)
	var sawSentence bool
	var numWords, numSentences int
	for sentence := range corpus.Sentences() {
		sawSentence = true
		numSentences++
		for _, w := range sentence {
			counts[w]++
			numWords++
		}
		if numSentences%10000 == 0 {
			glog.V(1).Infof("word2vec: scanned %d sentences, %d words, %d distinct so far", numSentences, numWords, len(counts))
		}
	}
	if !sawSentence {
		return nil, ErrEmptyCorpus
	}

	v := &Vocab{index: newVocabIndex(len(counts))}
	for word, count := range counts {
		if count < minCount {
			continue
		}
		id := WordId(len(v.entries))
		v.entries = append(v.entries, wordEntry{word: word, count: count, index: id})
		v.index.insert(word, id)
	}
	if len(v.entries) == 0 {
		return nil, ErrEmptyVocabulary
	}

	if nullWord {
		id := WordId(len(v.entries))
		v.entries = append(v.entries, wordEntry{word: nullWordToken, count: 1, index: id})
		v.index.insert(nullWordToken, id)
		v.nullWord = true
	}

	glog.Infof("word2vec: collected %d word types (min_count=%d) from %d sentences, %d words", len(v.entries), minCount, numSentences, numWords)
	return v, nil
}
