package word2vec

import "unsafe"

// rowAlignBytes is the alignment guarantee WeightStore makes for the
// start of every matrix row, so SIMD loads (8 float32 lanes on AVX2,
// for instance) never straddle a cache-line boundary unnecessarily.
const rowAlignBytes = 32

// alignedFloat32s returns a []float32 of length n whose backing array
// starts at a rowAlignBytes-aligned address, over-allocating and
// slicing past the unaligned head exactly the way the teacher pads
// its binary records to unsafe.Alignof(xqwEntry{}) before writing
// them (hashed.go's WriteBinary/unsafeParseBinary): compute the
// misalignment of the raw allocation's address and shift the returned
// slice's start by that many elements.
func alignedFloat32s(n int) []float32 {
	const elemSize = unsafe.Sizeof(float32(0))
	pad := int(rowAlignBytes/elemSize) - 1
	raw := make([]float32, n+pad)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	misalign := addr % rowAlignBytes
	if misalign == 0 {
		return raw[:n]
	}
	shift := (rowAlignBytes - misalign) / elemSize
	return raw[shift : shift+uintptr(n)]
}

// rowStride rounds dim up to a multiple of rowAlignBytes/4 float32
// lanes so that, given an aligned base, every row in a matrix
// allocated in one contiguous block also starts aligned.
func rowStride(dim int) int {
	lanes := int(rowAlignBytes / unsafe.Sizeof(float32(0)))
	if dim%lanes == 0 {
		return dim
	}
	return (dim/lanes + 1) * lanes
}

// matrix is a V x D matrix of float32 backed by one aligned,
// contiguous allocation (stride >= D, padded per rowStride), exposed
// as row views. No field is ever wrapped in a mutex: per the
// concurrency model, writes race by design and rely on the host
// architecture not tearing a naturally aligned 32-bit store.
type matrix struct {
	data   []float32
	rows   int
	dim    int
	stride int
}

func newMatrix(rows, dim int) *matrix {
	stride := rowStride(dim)
	return &matrix{
		data:   alignedFloat32s(rows * stride),
		rows:   rows,
		dim:    dim,
		stride: stride,
	}
}

// Row returns the dim-length view of row i. Mutations through the
// returned slice are visible to every other holder of the matrix.
func (m *matrix) Row(i WordId) []float32 {
	off := int(i) * m.stride
	return m.data[off : off+m.dim]
}

func (m *matrix) Rows() int { return m.rows }
func (m *matrix) Dim() int  { return m.dim }

// WeightStore owns the three projection matrices and the per-row
// learning-rate lock vector described in the data model. It performs
// no synchronisation (see the concurrency model), and neither does
// TrainingPipeline: its workers read and write rows concurrently.
type WeightStore struct {
	WIn  *matrix // V x D, input/projection vectors
	WHS  *matrix // V x D, hierarchical-softmax hidden->output (V-1 rows used)
	WNeg *matrix // V x D, negative-sampling hidden->output
	Lock []float32
}

// NewWeightStore allocates and initialises a WeightStore for v: W_in
// rows are seeded deterministically from seed (data model §3), W_hs
// and W_neg start at zero, and every lock entry starts at 1.0
// (trainable).
func NewWeightStore(v *Vocab, dim int, seed uint64) *WeightStore {
	n := v.Len()
	ws := &WeightStore{
		WIn:  newMatrix(n, dim),
		WHS:  newMatrix(n, dim),
		WNeg: newMatrix(n, dim),
		Lock: make([]float32, n),
	}
	for i := 0; i < n; i++ {
		copy(ws.WIn.Row(WordId(i)), seededVector(v.entries[i].word, seed, dim))
		ws.Lock[i] = 1
	}
	return ws
}

// Dim returns the embedding dimensionality D.
func (ws *WeightStore) Dim() int { return ws.WIn.Dim() }

// Freeze sets lock[id] to 0, suppressing further training updates to
// W_in[id]. Used by FormatCodec.Intersect when a row is overwritten
// verbatim from an external model.
func (ws *WeightStore) Freeze(id WordId) { ws.Lock[id] = 0 }
