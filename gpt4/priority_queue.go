package gpt4

// mergeNode is one symbol in a chunk's doubly linked list, together with its
// queued merge candidate, if any.
type mergeNode struct {
	origPos int     // Position in the original byte sequence
	id      uint32  // Symbol id at this position
	mergeID uint32  // Id produced by merging with the next symbol
	prio    float64 // Merge id plus fractional position bias
	prev    *mergeNode
	next    *mergeNode
	deleted bool // Whether this node has been replaced or consumed
}

// mergeNodeQueue implements a min-heap of merge candidates. The smallest
// priority pops first: the earliest-trained merge, and among its occurrences
// the leftmost one.
type mergeNodeQueue []*mergeNode

func (q mergeNodeQueue) Len() int { return len(q) }

func (q mergeNodeQueue) Less(i, j int) bool {
	return q[i].prio < q[j].prio
}

func (q mergeNodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *mergeNodeQueue) Push(x any) {
	*q = append(*q, x.(*mergeNode))
}

func (q *mergeNodeQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	*q = old[:n-1]
	return node
}
