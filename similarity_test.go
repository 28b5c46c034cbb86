package word2vec

import (
	"math"
	"testing"
)

func setVector(ws *WeightStore, id WordId, vals []float32) {
	copy(ws.WIn.Row(id), vals)
}

func TestSimilarityUnitVectors(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 1, "b": 1, "c": 1})
	ws := NewWeightStore(v, 2, 1)
	aID, _ := v.IdOf("a")
	bID, _ := v.IdOf("b")
	cID, _ := v.IdOf("c")
	setVector(ws, aID, []float32{1, 0})
	setVector(ws, bID, []float32{1, 0})
	setVector(ws, cID, []float32{0, 1})

	sim := NewSimilarityIndex(v, ws)
	same, err := sim.Similarity("a", "b")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(float64(same-1)) > 1e-5 {
		t.Fatalf("expected identical-direction vectors to have similarity 1, got %v", same)
	}
	orth, err := sim.Similarity("a", "c")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(float64(orth)) > 1e-5 {
		t.Fatalf("expected orthogonal vectors to have similarity 0, got %v", orth)
	}
}

func TestSimilarityOutOfVocabulary(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 1})
	ws := NewWeightStore(v, 2, 1)
	sim := NewSimilarityIndex(v, ws)
	if _, err := sim.Similarity("a", "nope"); err != ErrOutOfVocabulary {
		t.Fatalf("expected ErrOutOfVocabulary, got %v", err)
	}
}

func TestMostSimilarExcludesInputWords(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"king": 1, "queen": 1, "man": 1, "woman": 1})
	ws := NewWeightStore(v, 3, 1)
	kingID, _ := v.IdOf("king")
	queenID, _ := v.IdOf("queen")
	manID, _ := v.IdOf("man")
	womanID, _ := v.IdOf("woman")
	setVector(ws, kingID, []float32{1, 1, 0})
	setVector(ws, manID, []float32{1, 0, 0})
	setVector(ws, womanID, []float32{0, 1, 0})
	setVector(ws, queenID, []float32{0, 1.01, 0.01})

	sim := NewSimilarityIndex(v, ws)
	results, err := sim.MostSimilar(
		[]WeightedWord{{Word: "king"}, {Word: "woman"}},
		[]WeightedWord{{Word: "man"}},
		2,
	)
	if err != nil {
		t.Fatalf("MostSimilar: %v", err)
	}
	for _, r := range results {
		if r.Word == "king" || r.Word == "woman" || r.Word == "man" {
			t.Fatalf("expected input words excluded from results, got %q", r.Word)
		}
	}
	if len(results) == 0 || results[0].Word != "queen" {
		t.Fatalf("expected top result to be %q, got %+v", "queen", results)
	}
}

func TestMostSimilarRequiresNonEmptyInput(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 1})
	ws := NewWeightStore(v, 2, 1)
	sim := NewSimilarityIndex(v, ws)
	if _, err := sim.MostSimilar(nil, nil, 5); err != ErrCannotCompareEmpty {
		t.Fatalf("expected ErrCannotCompareEmpty, got %v", err)
	}
}

func TestDoesntMatch(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"cat": 1, "dog": 1, "bird": 1, "car": 1})
	ws := NewWeightStore(v, 2, 1)
	catID, _ := v.IdOf("cat")
	dogID, _ := v.IdOf("dog")
	birdID, _ := v.IdOf("bird")
	carID, _ := v.IdOf("car")
	setVector(ws, catID, []float32{1, 0.05})
	setVector(ws, dogID, []float32{1, -0.05})
	setVector(ws, birdID, []float32{0.95, 0})
	setVector(ws, carID, []float32{-1, 0})

	sim := NewSimilarityIndex(v, ws)
	word, err := sim.DoesntMatch([]string{"cat", "dog", "bird", "car"})
	if err != nil {
		t.Fatalf("DoesntMatch: %v", err)
	}
	if word != "car" {
		t.Fatalf("expected %q to be the outlier, got %q", "car", word)
	}
}
