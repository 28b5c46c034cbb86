package word2vec

import (
	"bytes"
	"math"
	"testing"
)

func TestSaveLoadTextRoundTrip(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 5, "b": 3, "c": 1})
	ws := NewWeightStore(v, 4, 1)
	var buf bytes.Buffer
	if err := SaveText(&buf, v, ws); err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	lv, err := LoadText(&buf)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if lv.Len() != v.CountedLen() {
		t.Fatalf("expected %d loaded words, got %d", v.CountedLen(), lv.Len())
	}
	for i := 0; i < v.CountedLen(); i++ {
		id := WordId(i)
		loadedID, ok := lv.IdOf(v.StringOf(id))
		if !ok {
			t.Fatalf("expected word %q present after round-trip", v.StringOf(id))
		}
		orig := ws.WIn.Row(id)
		got := lv.Row(loadedID)
		for d := range orig {
			if math.Abs(float64(orig[d]-got[d])) > 5e-7 {
				t.Fatalf("text round-trip differs by more than 5e-7 at dim %d: %v vs %v", d, orig[d], got[d])
			}
		}
	}
}

func TestSaveLoadBinaryRoundTripExact(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 5, "b": 3, "c": 1})
	ws := NewWeightStore(v, 4, 1)
	var buf bytes.Buffer
	if err := SaveBinary(&buf, v, ws); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	lv, err := LoadBinary(&buf)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	for i := 0; i < v.CountedLen(); i++ {
		id := WordId(i)
		loadedID, ok := lv.IdOf(v.StringOf(id))
		if !ok {
			t.Fatalf("expected word %q present after round-trip", v.StringOf(id))
		}
		orig := ws.WIn.Row(id)
		got := lv.Row(loadedID)
		for d := range orig {
			if orig[d] != got[d] {
				t.Fatalf("binary round-trip not bit-exact at dim %d: %v vs %v", d, orig[d], got[d])
			}
		}
	}
}

func TestLoadTextRejectsMalformedHeader(t *testing.T) {
	if _, err := LoadText(bytes.NewBufferString("not a header\n")); err == nil {
		t.Fatal("expected an error for a malformed header")
	}
}

func TestLoadTextRejectsWrongFieldCount(t *testing.T) {
	buf := bytes.NewBufferString("1 3\nfoo 1.0 2.0\n")
	if _, err := LoadText(buf); err == nil {
		t.Fatal("expected an error when a row has the wrong number of fields")
	}
}

func TestIntersectFreezesOverwrittenRows(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 5, "b": 3})
	ws := NewWeightStore(v, 2, 1)
	lv := &LoadedVectors{
		words: []string{"a"},
		index: map[string]WordId{"a": 0},
		dim:   2,
		rows:  [][]float32{{9, 9}},
	}
	merged, err := Intersect(v, ws, lv)
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	if merged != 1 {
		t.Fatalf("expected 1 merged row, got %d", merged)
	}
	aID, _ := v.IdOf("a")
	if ws.Lock[aID] != 0 {
		t.Fatal("expected intersected row to be frozen")
	}
	row := ws.WIn.Row(aID)
	if row[0] != 9 || row[1] != 9 {
		t.Fatalf("expected intersected row overwritten, got %v", row)
	}
}

func TestIntersectRejectsDimensionMismatch(t *testing.T) {
	v := vocabFromCounts(map[string]uint64{"a": 1})
	ws := NewWeightStore(v, 4, 1)
	lv := &LoadedVectors{words: []string{"a"}, index: map[string]WordId{"a": 0}, dim: 2, rows: [][]float32{{1, 2}}}
	if _, err := Intersect(v, ws, lv); err != ErrIncompatibleDimension {
		t.Fatalf("expected ErrIncompatibleDimension, got %v", err)
	}
}
