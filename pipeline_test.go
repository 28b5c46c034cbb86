package word2vec

import "testing"

func buildTestPipeline(t *testing.T, cfg TrainingConfig) (*TrainingPipeline, *Vocab, *WeightStore) {
	t.Helper()
	corpus := &sliceCorpus{sentences: [][]string{
		{"the", "quick", "brown", "fox", "jumps"},
		{"the", "lazy", "dog", "sleeps"},
		{"the", "fox", "runs"},
	}}
	v, err := BuildVocabulary(corpus, 1, false)
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	sub := NewSubsampler(cfg.Sample)
	sub.PrecalcKeepProb(v)
	var neg *NegativeSampler
	if cfg.UseHS {
		BuildHuffmanCodes(v)
	}
	if cfg.Negative > 0 {
		neg = BuildNegativeSampler(v)
	}
	ws := NewWeightStore(v, cfg.Dim, cfg.Seed)
	tp := NewTrainingPipeline(cfg, v, ws, neg, sub)
	return tp, v, ws
}

func TestTrainingPipelineSkipGramHS(t *testing.T) {
	cfg := TrainingConfig{
		Dim: 8, Window: 2, Sg: true, UseHS: true,
		Iter: 1, Alpha: 0.05, MinAlpha: 0.0001,
		Workers: 2, ChunkSize: 2, Seed: 1, LearnV: true, LearnH: true,
	}
	tp, v, ws := buildTestPipeline(t, cfg)
	corpus := &sliceCorpus{sentences: [][]string{
		{"the", "quick", "brown", "fox", "jumps"},
		{"the", "lazy", "dog", "sleeps"},
		{"the", "fox", "runs"},
	}}
	before := make([][]float32, v.Len())
	for i := range before {
		before[i] = append([]float32(nil), ws.WIn.Row(WordId(i))...)
	}
	done, err := tp.Train(corpus)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if done == 0 {
		t.Fatal("expected Train to report a nonzero word count")
	}
	changed := false
	for i := 0; i < v.Len(); i++ {
		if !floatSliceEqual(before[i], ws.WIn.Row(WordId(i))) {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("expected at least one row to change after training")
	}
}

func TestTrainingPipelineCbowNegative(t *testing.T) {
	cfg := TrainingConfig{
		Dim: 8, Window: 2, Sg: false, CbowMean: true, Negative: 3,
		Iter: 1, Alpha: 0.05, MinAlpha: 0.0001,
		Workers: 2, ChunkSize: 2, Seed: 1, LearnV: true, LearnH: true,
	}
	tp, _, ws := buildTestPipeline(t, cfg)
	corpus := &sliceCorpus{sentences: [][]string{
		{"the", "quick", "brown", "fox", "jumps"},
		{"the", "lazy", "dog", "sleeps"},
		{"the", "fox", "runs"},
	}}
	if _, err := tp.Train(corpus); err != nil {
		t.Fatalf("Train: %v", err)
	}
	row := ws.WIn.Row(0)
	for _, x := range row {
		if x != x { // NaN check without importing math twice
			t.Fatalf("training produced NaN weights: %v", row)
		}
	}
}

// singlePassCorpus deliberately does not implement Restartable, to
// exercise the GeneratorCorpus rejection path.
type singlePassCorpus struct {
	sentences [][]string
}

func (c *singlePassCorpus) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	go func() {
		defer close(out)
		for _, s := range c.sentences {
			out <- Sentence(s)
		}
	}()
	return out
}

func TestTrainingPipelineRejectsNonRestartableMultiIter(t *testing.T) {
	cfg := TrainingConfig{Dim: 4, Window: 2, Sg: true, UseHS: true, Iter: 2, Alpha: 0.05, Workers: 1, Seed: 1, LearnV: true, LearnH: true}
	tp, _, _ := buildTestPipeline(t, cfg)
	corpus := &singlePassCorpus{sentences: [][]string{{"a", "b"}}}
	if _, err := tp.Train(corpus); err != ErrGeneratorCorpus {
		t.Fatalf("expected ErrGeneratorCorpus for a non-restartable corpus with iter>1, got %v", err)
	}
}
