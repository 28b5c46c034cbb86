package word2vec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func drain(c Corpus) []Sentence {
	var out []Sentence
	for s := range c.Sentences() {
		out = append(out, s)
	}
	return out
}

func TestLineSentence(t *testing.T) {
	path := writeTempFile(t, "corpus.txt", "the quick fox\nthe lazy dog\n")
	c := &LineSentence{Path: path}
	sentences := drain(c)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	if len(sentences[0]) != 3 {
		t.Fatalf("expected first sentence to have 3 tokens, got %d", len(sentences[0]))
	}
	if !c.Restartable() {
		t.Fatal("expected LineSentence to be restartable")
	}
	if len(drain(c)) != 2 {
		t.Fatal("expected a second pass to yield the same sentences")
	}
}

func TestText8CorpusChunking(t *testing.T) {
	words := ""
	for i := 0; i < 25; i++ {
		words += "w "
	}
	path := writeTempFile(t, "text8.txt", words)
	c := &Text8Corpus{Path: path, MaxSentLen: 10}
	sentences := drain(c)
	total := 0
	for _, s := range sentences {
		if len(s) > 10 {
			t.Fatalf("expected no chunk longer than 10, got %d", len(s))
		}
		total += len(s)
	}
	if total != 25 {
		t.Fatalf("expected 25 total tokens across chunks, got %d", total)
	}
}

func TestTaggedCorpusFiltersNonAlphaTags(t *testing.T) {
	path := writeTempFile(t, "brown.txt", "The/AT fox/NN ,/,; jumps/VBZ\n")
	c := &TaggedCorpus{Path: path}
	sentences := drain(c)
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	for _, tok := range sentences[0] {
		if tok == ",/,;" {
			t.Fatalf("expected punctuation token filtered out, got %v", sentences[0])
		}
	}
	if len(sentences[0]) != 3 {
		t.Fatalf("expected 3 alphabetic-tag tokens, got %d: %v", len(sentences[0]), sentences[0])
	}
}

func TestRepeatCorpusNTimesBuffersSinglePass(t *testing.T) {
	inner := &singlePassCorpus{sentences: [][]string{{"a", "b"}, {"c"}}}
	repeat := &RepeatCorpusNTimes{Inner: inner, N: 3}
	sentences := drain(repeat)
	if len(sentences) != 6 {
		t.Fatalf("expected 3 replays of 2 sentences == 6, got %d", len(sentences))
	}
}

func TestRepeatCorpusNTimesDelegatesRestartable(t *testing.T) {
	inner := &sliceCorpus{sentences: [][]string{{"a"}}}
	repeat := &RepeatCorpusNTimes{Inner: inner, N: 2}
	sentences := drain(repeat)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences from a restartable inner corpus repeated twice, got %d", len(sentences))
	}
}
