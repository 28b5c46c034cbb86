package word2vec

import "container/heap"

// BuildHuffmanCodes constructs a binary Huffman tree over v's counted
// words (the null word, if any, is excluded — it is never predicted)
// and attaches each word's code and path to its wordEntry.
//
// The tree is represented as two parallel integer arrays indexed by
// node id: ids [0, n) are leaves (one per word, in the same order as
// v's indices), ids [n, 2n-1) are inner nodes created by merging the
// two lowest-count remaining nodes, in merge order. This avoids
// pointer-based tree nodes entirely, per the design's preference for
// flat arrays over a pointer graph that would need to be walked and
// discarded.
//
// Ties are broken by insertion order (a monotonically increasing
// sequence number paired with count in the heap key), matching a
// stable priority queue discipline.
func BuildHuffmanCodes(v *Vocab) {
	n := v.CountedLen()
	if n == 0 {
		return
	}
	if n == 1 {
		v.entries[0].huffCode = []uint8{0}
		v.entries[0].huffPath = []uint32{0}
		return
	}

	left := make([]int32, n-1)
	right := make([]int32, n-1)
	count := make([]uint64, 2*n-1)

	h := make(huffHeap, n)
	for i := 0; i < n; i++ {
		h[i] = huffNode{count: v.entries[i].count, node: int32(i), seq: i}
		count[i] = v.entries[i].count
	}
	heap.Init(&h)

	nextSeq := n
	for k := 0; k < n-1; k++ {
		a := heap.Pop(&h).(huffNode)
		b := heap.Pop(&h).(huffNode)
		merged := int32(n + k)
		left[k] = a.node
		right[k] = b.node
		count[merged] = a.count + b.count
		heap.Push(&h, huffNode{count: count[merged], node: merged, seq: nextSeq})
		nextSeq++
	}

	root := int32(2*n - 2)
	var walk func(node int32, code []uint8, path []uint32)
	walk = func(node int32, code []uint8, path []uint32) {
		if int(node) < n {
			codeCopy := make([]uint8, len(code))
			copy(codeCopy, code)
			pathCopy := make([]uint32, len(path))
			copy(pathCopy, path)
			v.entries[node].huffCode = codeCopy
			v.entries[node].huffPath = pathCopy
			return
		}
		k := int(node) - n
		// Inner node ids are shifted by -n so path values land in [0,n).
		innerId := uint32(node) - uint32(n)
		childPath := append(append([]uint32{}, path...), innerId)
		walk(left[k], append(append([]uint8{}, code...), 0), childPath)
		walk(right[k], append(append([]uint8{}, code...), 1), childPath)
	}
	walk(root, nil, nil)
}

type huffNode struct {
	count uint64
	node  int32
	seq   int
}

type huffHeap []huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].seq < h[j].seq
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x any)   { *h = append(*h, x.(huffNode)) }
func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
