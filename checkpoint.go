package word2vec

import (
	"encoding/gob"
	"io"

	"github.com/kho/easy"
)

// checkpoint is the engine's native serialization format: unlike the
// legacy text/binary vector files, it round-trips everything needed
// to resume training (Huffman codes/paths, negative-sampling table,
// per-row locks), via plain encoding/gob the way the teacher persists
// its own model state (io.go's FromGob/FromGobFile), rather than a
// bespoke binary layout.
type checkpoint struct {
	Dim      int
	NullWord bool
	Words    []string
	Counts   []uint64
	KeepProb []float32
	HuffCode [][]uint8
	HuffPath [][]uint32

	WIn  [][]float32
	WHS  [][]float32
	WNeg [][]float32
	Lock []float32

	CumTable []uint32
}

// snapshot captures v/ws/neg into a checkpoint-ready value.
func snapshot(v *Vocab, ws *WeightStore, neg *NegativeSampler) checkpoint {
	n := v.Len()
	c := checkpoint{
		Dim:      ws.Dim(),
		NullWord: v.nullWord,
		Words:    make([]string, n),
		Counts:   make([]uint64, n),
		KeepProb: make([]float32, n),
		HuffCode: make([][]uint8, n),
		HuffPath: make([][]uint32, n),
		WIn:      make([][]float32, n),
		WHS:      make([][]float32, n),
		WNeg:     make([][]float32, n),
		Lock:     append([]float32(nil), ws.Lock...),
	}
	for i := 0; i < n; i++ {
		id := WordId(i)
		c.Words[i] = v.StringOf(id)
		c.Counts[i] = v.Count(id)
		c.KeepProb[i] = v.KeepProb(id)
		c.HuffCode[i] = v.HuffmanCode(id)
		c.HuffPath[i] = v.HuffmanPath(id)
		c.WIn[i] = append([]float32(nil), ws.WIn.Row(id)...)
		c.WHS[i] = append([]float32(nil), ws.WHS.Row(id)...)
		c.WNeg[i] = append([]float32(nil), ws.WNeg.Row(id)...)
	}
	if neg != nil {
		c.CumTable = append([]uint32(nil), neg.cumTable...)
	}
	return c
}

// restore rebuilds Vocab/WeightStore/NegativeSampler from a decoded
// checkpoint.
func (c checkpoint) restore() (*Vocab, *WeightStore, *NegativeSampler) {
	v := &Vocab{index: newVocabIndex(len(c.Words)), nullWord: c.NullWord}
	for i, word := range c.Words {
		id := WordId(i)
		v.entries = append(v.entries, wordEntry{
			word: word, count: c.Counts[i], index: id,
			keepProb: c.KeepProb[i], huffCode: c.HuffCode[i], huffPath: c.HuffPath[i],
		})
		v.index.insert(word, id)
	}

	ws := &WeightStore{
		WIn:  newMatrix(len(c.Words), c.Dim),
		WHS:  newMatrix(len(c.Words), c.Dim),
		WNeg: newMatrix(len(c.Words), c.Dim),
		Lock: append([]float32(nil), c.Lock...),
	}
	for i := range c.Words {
		id := WordId(i)
		copy(ws.WIn.Row(id), c.WIn[i])
		copy(ws.WHS.Row(id), c.WHS[i])
		copy(ws.WNeg.Row(id), c.WNeg[i])
	}

	var neg *NegativeSampler
	if len(c.CumTable) > 0 {
		neg = &NegativeSampler{cumTable: append([]uint32(nil), c.CumTable...)}
	}
	return v, ws, neg
}

// SaveCheckpoint writes v/ws/neg's complete state to w as gob.
func SaveCheckpoint(w io.Writer, v *Vocab, ws *WeightStore, neg *NegativeSampler) error {
	return gob.NewEncoder(w).Encode(snapshot(v, ws, neg))
}

// SaveCheckpointFile is the file-path convenience wrapper used by
// cmd/train, mirroring easy.MustCreate's "open-or-die" ergonomics for
// output files the CLI driver cannot meaningfully recover from
// failing to open.
func SaveCheckpointFile(path string, v *Vocab, ws *WeightStore, neg *NegativeSampler) error {
	w := easy.MustCreate(path)
	defer w.Close()
	return SaveCheckpoint(w, v, ws, neg)
}

// LoadCheckpoint reads back a model saved by SaveCheckpoint.
func LoadCheckpoint(r io.Reader) (*Vocab, *WeightStore, *NegativeSampler, error) {
	var c checkpoint
	if err := gob.NewDecoder(r).Decode(&c); err != nil {
		return nil, nil, nil, err
	}
	v, ws, neg := c.restore()
	return v, ws, neg, nil
}

// LoadCheckpointFile opens path with easy.Open (transparently
// handling gzip-suffixed files, per the teacher's convention) and
// loads a checkpoint from it.
func LoadCheckpointFile(path string) (*Vocab, *WeightStore, *NegativeSampler, error) {
	r, err := easy.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer r.Close()
	return LoadCheckpoint(r)
}
