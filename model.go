package word2vec

import "github.com/golang/glog"

// Config holds the vocabulary-construction and training knobs a
// caller sets before calling Model.BuildVocab/Model.Train. It mirrors
// TrainingConfig's fields plus the vocabulary-only knobs (MinCount,
// NullWord) that apply before any WeightStore exists.
type Config struct {
	Dim       int
	Window    int
	MinCount  uint64
	Sample    float64
	Sg        bool
	CbowMean  bool
	UseHS     bool
	Negative  int
	Iter      int
	Alpha     float64
	MinAlpha  float64
	Workers   int
	ChunkSize int
	Seed      uint64
	NullWord  bool
	LearnV    bool
	LearnH    bool
}

func (c Config) trainingConfig() TrainingConfig {
	return TrainingConfig{
		Dim: c.Dim, Window: c.Window, Sg: c.Sg, CbowMean: c.CbowMean,
		UseHS: c.UseHS, Negative: c.Negative, Sample: c.Sample,
		Iter: c.Iter, Alpha: c.Alpha, MinAlpha: c.MinAlpha,
		Workers: c.Workers, ChunkSize: c.ChunkSize, Seed: c.Seed,
		LearnV: c.LearnV, LearnH: c.LearnH,
	}
}

// Model is the top-level handle a CLI driver or library caller holds:
// it owns the vocabulary, weight matrices, and the coding/sampling
// structures built from them, and exposes BuildVocab/Train/Similarity
// as one cohesive API over the lower-level components.
type Model struct {
	cfg   Config
	vocab *Vocab
	ws    *WeightStore
	huff  bool
	neg   *NegativeSampler
	sub   *Subsampler
	sim   *SimilarityIndex
}

// NewModel returns an untrained Model for cfg. BuildVocab must be
// called before Train.
func NewModel(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// BuildVocab makes one pass over corpus, builds the pruned vocabulary,
// and (depending on cfg) the Huffman coder and/or negative-sampling
// table and subsampling thresholds, then allocates and seeds the
// weight matrices. Train cannot be called before this succeeds.
func (m *Model) BuildVocab(corpus Corpus) error {
	v, err := BuildVocabulary(corpus, m.cfg.MinCount, m.cfg.NullWord)
	if err != nil {
		return err
	}
	m.vocab = v

	m.sub = NewSubsampler(m.cfg.Sample)
	m.sub.PrecalcKeepProb(v)

	if m.cfg.UseHS {
		BuildHuffmanCodes(v)
		m.huff = true
	}
	if m.cfg.Negative > 0 {
		m.neg = BuildNegativeSampler(v)
	}

	m.ws = NewWeightStore(v, m.cfg.Dim, m.cfg.Seed)
	m.sim = nil
	glog.Infof("word2vec: vocabulary ready (%d words, dim=%d, hs=%v, negative=%d)", v.Len(), m.cfg.Dim, m.cfg.UseHS, m.cfg.Negative)
	return nil
}

// Train runs the SGD training loop over corpus. BuildVocab must have
// already succeeded.
func (m *Model) Train(corpus Corpus) (uint64, error) {
	if m.vocab == nil || m.ws == nil {
		return 0, ErrNoTrainingBeforeVocab
	}
	pipeline := NewTrainingPipeline(m.cfg.trainingConfig(), m.vocab, m.ws, m.neg, m.sub)
	done, err := pipeline.Train(corpus)
	m.sim = nil // weights changed; invalidate any cached normalised matrix
	return done, err
}

// Vocab, Weights and Negative expose the underlying components for
// callers that need them directly (FormatCodec, cmd/ drivers).
func (m *Model) Vocab() *Vocab              { return m.vocab }
func (m *Model) Weights() *WeightStore      { return m.ws }
func (m *Model) Negative() *NegativeSampler { return m.neg }

// Similarity lazily constructs (or returns the cached)
// SimilarityIndex over the model's current weights.
func (m *Model) Similarity() (*SimilarityIndex, error) {
	if m.vocab == nil || m.ws == nil {
		return nil, ErrNoTrainingBeforeVocab
	}
	if m.sim == nil {
		m.sim = NewSimilarityIndex(m.vocab, m.ws)
	}
	return m.sim, nil
}

// LoadModel rebuilds a Model from a checkpoint previously written by
// SaveCheckpoint, re-deriving only what the checkpoint doesn't carry
// (the Config values relevant to further training are assumed
// supplied fresh by the caller, since a loaded model is typically used
// for query-only workloads).
func LoadModel(cfg Config, v *Vocab, ws *WeightStore, neg *NegativeSampler) *Model {
	m := &Model{cfg: cfg, vocab: v, ws: ws, neg: neg}
	m.sub = NewSubsampler(cfg.Sample)
	return m
}
