package word2vec

import (
	"bytes"
	"testing"
)

func TestModelTrainBeforeVocabFails(t *testing.T) {
	m := NewModel(Config{Dim: 4, Window: 2, Sg: true, UseHS: true, Alpha: 0.05, Workers: 1, LearnV: true, LearnH: true})
	corpus := &sliceCorpus{sentences: [][]string{{"a", "b"}}}
	if _, err := m.Train(corpus); err != ErrNoTrainingBeforeVocab {
		t.Fatalf("expected ErrNoTrainingBeforeVocab, got %v", err)
	}
}

func TestModelBuildVocabThenTrain(t *testing.T) {
	cfg := Config{
		Dim: 8, Window: 2, MinCount: 1, Sg: true, UseHS: true,
		Iter: 1, Alpha: 0.05, MinAlpha: 0.0001, Workers: 2, ChunkSize: 2, Seed: 1,
		LearnV: true, LearnH: true,
	}
	m := NewModel(cfg)
	corpus := &sliceCorpus{sentences: [][]string{
		{"the", "quick", "brown", "fox"},
		{"the", "lazy", "dog"},
	}}
	if err := m.BuildVocab(corpus); err != nil {
		t.Fatalf("BuildVocab: %v", err)
	}
	if _, err := m.Train(corpus); err != nil {
		t.Fatalf("Train: %v", err)
	}
	sim, err := m.Similarity()
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if _, err := sim.Similarity("the", "fox"); err != nil {
		t.Fatalf("Similarity query after training: %v", err)
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	cfg := Config{
		Dim: 6, Window: 2, MinCount: 1, Sg: true, UseHS: true, Negative: 0,
		Iter: 1, Alpha: 0.05, MinAlpha: 0.0001, Workers: 1, ChunkSize: 2, Seed: 3,
		LearnV: true, LearnH: true,
	}
	m := NewModel(cfg)
	corpus := &sliceCorpus{sentences: [][]string{{"alpha", "beta", "gamma"}}}
	if err := m.BuildVocab(corpus); err != nil {
		t.Fatalf("BuildVocab: %v", err)
	}
	if _, err := m.Train(corpus); err != nil {
		t.Fatalf("Train: %v", err)
	}

	var buf bytes.Buffer
	if err := SaveCheckpoint(&buf, m.Vocab(), m.Weights(), m.Negative()); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	v2, ws2, _, err := LoadCheckpoint(&buf)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if v2.Len() != m.Vocab().Len() {
		t.Fatalf("expected %d words after reload, got %d", m.Vocab().Len(), v2.Len())
	}
	for i := 0; i < v2.Len(); i++ {
		id := WordId(i)
		if v2.StringOf(id) != m.Vocab().StringOf(id) {
			t.Fatalf("word order changed across checkpoint round-trip at index %d", i)
		}
		if !floatSliceEqual(ws2.WIn.Row(id), m.Weights().WIn.Row(id)) {
			t.Fatalf("W_in row %d differs after checkpoint round-trip", i)
		}
	}
}
