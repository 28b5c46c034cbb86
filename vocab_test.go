package word2vec

import "testing"

type sliceCorpus struct {
	sentences [][]string
}

func (c *sliceCorpus) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	go func() {
		defer close(out)
		for _, s := range c.sentences {
			out <- Sentence(s)
		}
	}()
	return out
}

func (c *sliceCorpus) Restartable() bool { return true }

func TestBuildVocabularyPrunesAndCounts(t *testing.T) {
	corpus := &sliceCorpus{sentences: [][]string{
		{"the", "quick", "fox"},
		{"the", "fox", "the"},
	}}
	v, err := BuildVocabulary(corpus, 2, false)
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	if v.Len() != 2 {
		t.Fatalf("expected 2 words surviving min_count=2, got %d", v.Len())
	}
	id, ok := v.IdOf("the")
	if !ok {
		t.Fatal("expected \"the\" in vocabulary")
	}
	if v.Count(id) != 3 {
		t.Fatalf("expected count 3 for \"the\", got %d", v.Count(id))
	}
	if _, ok := v.IdOf("quick"); ok {
		t.Fatal("expected \"quick\" pruned by min_count")
	}
}

func TestBuildVocabularyEmptyCorpus(t *testing.T) {
	corpus := &sliceCorpus{}
	if _, err := BuildVocabulary(corpus, 1, false); err != ErrEmptyCorpus {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestBuildVocabularyEmptyAfterPruning(t *testing.T) {
	corpus := &sliceCorpus{sentences: [][]string{{"a", "b"}}}
	if _, err := BuildVocabulary(corpus, 5, false); err != ErrEmptyVocabulary {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestBuildVocabularyNullWord(t *testing.T) {
	corpus := &sliceCorpus{sentences: [][]string{{"a", "a", "b", "b"}}}
	v, err := BuildVocabulary(corpus, 1, true)
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	if v.Len() != v.CountedLen()+1 {
		t.Fatalf("expected null word to add exactly one entry")
	}
	id, ok := v.IdOf(nullWordToken)
	if !ok {
		t.Fatal("expected null word in index")
	}
	if id != WordId(v.Len()-1) {
		t.Fatal("expected null word to be the last entry")
	}
}
