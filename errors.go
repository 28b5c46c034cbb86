package word2vec

import "errors"

// Sentinel errors for the configuration and structural failures listed
// in the design: fatal conditions the caller must see immediately,
// as opposed to per-token training errors, which are logged and
// skipped silently.
var (
	// ErrEmptyCorpus is returned by BuildVocabulary when the corpus
	// iterator produces no sentences at all.
	ErrEmptyCorpus = errors.New("word2vec: corpus has no sentences")

	// ErrEmptyVocabulary is returned by BuildVocabulary when every
	// observed word is pruned by min_count.
	ErrEmptyVocabulary = errors.New("word2vec: vocabulary is empty after pruning")

	// ErrNoTrainingBeforeVocab is returned by Train when called on a
	// model with no vocabulary built yet.
	ErrNoTrainingBeforeVocab = errors.New("word2vec: vocabulary must be built before training")

	// ErrOutOfVocabulary is returned by query APIs (Similarity,
	// MostSimilar, MostSimilarCosmul, DoesntMatch) for words absent
	// from the vocabulary. Vocab.IdOf does not return it; it reports
	// absence with a false second result. Training never returns this:
	// OOV tokens are silently dropped instead.
	ErrOutOfVocabulary = errors.New("word2vec: word not in vocabulary")

	// ErrInvalidFormat is returned by the legacy text/binary vector
	// readers on a malformed header or row.
	ErrInvalidFormat = errors.New("word2vec: invalid vector file format")

	// ErrIncompatibleDimension is returned by Intersect when the
	// external file's vector size does not match this model's.
	ErrIncompatibleDimension = errors.New("word2vec: incompatible vector dimension")

	// ErrCannotCompareEmpty is returned by similarity queries
	// (MostSimilar, DoesntMatch) given no valid input words.
	ErrCannotCompareEmpty = errors.New("word2vec: cannot compare with no valid input words")

	// ErrGeneratorCorpus is returned at training start when the
	// caller supplies a non-restartable corpus with Iterations > 1
	// and no RepeatCorpusNTimes buffering configured.
	ErrGeneratorCorpus = errors.New("word2vec: corpus must be restartable for more than one iteration")
)
