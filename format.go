package word2vec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SaveText writes v's W_in matrix in the legacy word2vec text format:
// a "<vocab_size> <vector_size>\n" header followed by one
// "word v1 v2 ... vD\n" line per word, most frequent first, matching
// original_source's save_word2vec_format(binary=False).
func SaveText(w io.Writer, v *Vocab, ws *WeightStore) error {
	bw := bufio.NewWriter(w)
	order := orderByCountDesc(v)
	if _, err := fmt.Fprintf(bw, "%d %d\n", len(order), ws.Dim()); err != nil {
		return err
	}
	for _, id := range order {
		if _, err := bw.WriteString(v.StringOf(id)); err != nil {
			return err
		}
		row := ws.WIn.Row(id)
		for _, val := range row {
			if _, err := fmt.Fprintf(bw, " %f", val); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveBinary writes v's W_in matrix in the legacy word2vec binary
// format: the same text header, then for each word its UTF-8 bytes, a
// single space, and the row as raw little-endian float32s — no
// trailing newline between records, matching the C tool's mixed
// text/binary layout ported from save_word2vec_format(binary=True).
func SaveBinary(w io.Writer, v *Vocab, ws *WeightStore) error {
	bw := bufio.NewWriter(w)
	order := orderByCountDesc(v)
	if _, err := fmt.Fprintf(bw, "%d %d\n", len(order), ws.Dim()); err != nil {
		return err
	}
	buf := make([]byte, 4)
	for _, id := range order {
		if _, err := bw.WriteString(v.StringOf(id)); err != nil {
			return err
		}
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
		row := ws.WIn.Row(id)
		for _, val := range row {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(val))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func orderByCountDesc(v *Vocab) []WordId {
	n := v.CountedLen()
	order := make([]WordId, n)
	for i := range order {
		order[i] = WordId(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return v.Count(order[i]) > v.Count(order[j])
	})
	return order
}

// LoadedVectors is a standalone word/vector table read from a legacy
// word2vec file: enough to answer similarity queries, but — per
// original_source's docstring — missing the Huffman tree, so it
// cannot resume training.
type LoadedVectors struct {
	words []string
	index map[string]WordId
	dim   int
	rows  [][]float32
}

func (lv *LoadedVectors) Len() int                 { return len(lv.words) }
func (lv *LoadedVectors) Dim() int                 { return lv.dim }
func (lv *LoadedVectors) StringOf(id WordId) string { return lv.words[id] }
func (lv *LoadedVectors) IdOf(word string) (WordId, bool) {
	id, ok := lv.index[word]
	return id, ok
}
func (lv *LoadedVectors) Row(id WordId) []float32 { return lv.rows[id] }

// LoadText reads the legacy text vector format written by SaveText.
func LoadText(r io.Reader) (*LoadedVectors, error) {
	br := bufio.NewReader(r)
	vocabSize, dim, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	lv := &LoadedVectors{
		words: make([]string, 0, vocabSize),
		index: make(map[string]WordId, vocabSize),
		dim:   dim,
		rows:  make([][]float32, 0, vocabSize),
	}
	for lineNo := 0; lineNo < vocabSize; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line = strings.TrimRight(line, "\n")
		parts := strings.Split(line, " ")
		if len(parts) != dim+1 {
			return nil, fmt.Errorf("word2vec: invalid text vector on line %d: %w", lineNo, ErrInvalidFormat)
		}
		row := make([]float32, dim)
		for i, tok := range parts[1:] {
			f, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, fmt.Errorf("word2vec: invalid text vector on line %d: %w", lineNo, ErrInvalidFormat)
			}
			row[i] = float32(f)
		}
		lv.addRow(parts[0], row)
	}
	return lv, nil
}

// LoadBinary reads the legacy binary vector format written by
// SaveBinary.
func LoadBinary(r io.Reader) (*LoadedVectors, error) {
	br := bufio.NewReader(r)
	vocabSize, dim, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	lv := &LoadedVectors{
		words: make([]string, 0, vocabSize),
		index: make(map[string]WordId, vocabSize),
		dim:   dim,
		rows:  make([][]float32, 0, vocabSize),
	}
	rowBytes := dim * 4
	buf := make([]byte, rowBytes)
	for lineNo := 0; lineNo < vocabSize; lineNo++ {
		word, err := readSpaceDelimitedWord(br)
		if err != nil {
			return nil, fmt.Errorf("word2vec: reading word on record %d: %w", lineNo, err)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("word2vec: reading vector on record %d: %w", lineNo, ErrInvalidFormat)
		}
		row := make([]float32, dim)
		for i := 0; i < dim; i++ {
			row[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		}
		lv.addRow(word, row)
	}
	return lv, nil
}

func (lv *LoadedVectors) addRow(word string, row []float32) {
	id := WordId(len(lv.words))
	lv.words = append(lv.words, word)
	lv.index[word] = id
	lv.rows = append(lv.rows, row)
}

func readHeader(br *bufio.Reader) (vocabSize, dim int, err error) {
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, err
	}
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("word2vec: malformed header %q: %w", line, ErrInvalidFormat)
	}
	vocabSize, err1 := strconv.Atoi(fields[0])
	dim, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("word2vec: malformed header %q: %w", line, ErrInvalidFormat)
	}
	return vocabSize, dim, nil
}

// readSpaceDelimitedWord reads a binary-format record's word prefix: a
// run of bytes terminated by a single space, tolerating (and
// discarding) a leading newline some binary files carry before the
// next word, mirroring original_source's per-byte read loop.
func readSpaceDelimitedWord(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' {
			return sb.String(), nil
		}
		if b == '\n' {
			continue
		}
		sb.WriteByte(b)
	}
}

// Intersect merges lv into ws/v: for every word present in both, the
// corresponding W_in row is overwritten with lv's vector and the row
// is frozen (lock set to 0) so training never touches it again,
// exactly porting intersect_word2vec_format. Returns the number of
// words merged, or ErrIncompatibleDimension if lv's dimensionality
// does not match ws.
func Intersect(v *Vocab, ws *WeightStore, lv *LoadedVectors) (int, error) {
	if lv.Dim() != ws.Dim() {
		return 0, ErrIncompatibleDimension
	}
	merged := 0
	for i, word := range lv.words {
		id, ok := v.IdOf(word)
		if !ok {
			continue
		}
		copy(ws.WIn.Row(id), lv.rows[i])
		ws.Freeze(id)
		merged++
	}
	return merged, nil
}

// OpenFile is a small convenience wrapper over os.Open for callers
// that load vector files from a path. The CLI drivers open their files
// through easy.Open/easy.MustCreate instead.
func OpenFile(path string) (*os.File, error) {
	return os.Open(path)
}
