package gpt4

import (
	"container/heap"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Encode converts text into a sequence of token ids. Registered special
// tokens are dispatched on exact occurrences of their text; everything else
// is pre-tokenized and merged chunk by chunk. Encoding is a pure function of
// the merge and special-token tables and is safe for concurrent use.
func (t *Tokenizer) Encode(text string) []uint32 {
	output := make([]uint32, 0, len(text)/estimatedBytesPerToken+1)

	for _, seg := range t.splitBySpecialTokens(text) {
		if seg.special {
			output = append(output, t.special[seg.text])
			continue
		}
		for _, chunk := range t.pretokenize(seg.text) {
			output = append(output, t.encodeChunk(chunk)...)
		}
	}

	return output
}

// EncodeBatch encodes each input independently; the result at index i
// equals Encode(texts[i]). Large batches are spread across workers.
func (t *Tokenizer) EncodeBatch(texts []string) [][]uint32 {
	results := make([][]uint32, len(texts))

	if len(texts) < batchParallelThreshold {
		for i, text := range texts {
			results[i] = t.Encode(text)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			results[i] = t.Encode(text)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results
}

// encodeChunk applies the trained merge table to one chunk. Merges apply in
// training order: each round rewrites the adjacent pair with the smallest
// merge id, leftmost occurrence first, until no pair is in the table. That
// replays exactly the rewrites the trainer performed on this byte sequence.
func (t *Tokenizer) encodeChunk(chunk string) []uint32 {
	if cached := t.getCached(chunk); cached != nil {
		return cached
	}

	ids := make([]uint32, len(chunk))
	for i := 0; i < len(chunk); i++ {
		ids[i] = uint32(chunk[i])
	}
	if len(ids) <= 1 {
		t.cacheResult(chunk, ids)
		return ids
	}

	// Build linked list and seed the candidate queue
	pq := &mergeNodeQueue{}
	first := t.buildMergeList(ids, pq)

	for pq.Len() > 0 {
		left := heap.Pop(pq).(*mergeNode)

		// Skip entries invalidated by an earlier merge
		if !validMerge(left) {
			continue
		}

		first = t.applyMerge(left, first, pq, len(ids))
	}

	result := make([]uint32, 0, len(ids))
	for node := first; node != nil; node = node.next {
		result = append(result, node.id)
	}

	t.cacheResult(chunk, result)
	return result
}

// buildMergeList turns the byte ids into a doubly linked list and queues
// every adjacent pair that has a trained merge.
func (t *Tokenizer) buildMergeList(ids []uint32, pq *mergeNodeQueue) *mergeNode {
	first := &mergeNode{id: ids[0]}
	prev := first
	for i := 1; i < len(ids); i++ {
		node := &mergeNode{origPos: i, id: ids[i], prev: prev}
		prev.next = node
		t.addToMergeQueue(prev, pq, len(ids))
		prev = node
	}
	return first
}

// addToMergeQueue queues left paired with its right neighbor if the merge
// table contains that pair. The fractional position bias keeps occurrences
// of the same merge ordered left to right without disturbing the order
// between distinct merge ids.
func (t *Tokenizer) addToMergeQueue(left *mergeNode, pq *mergeNodeQueue, chunkLen int) {
	if left.next == nil {
		return
	}
	mergeID, ok := t.merges[Pair{left.id, left.next.id}]
	if !ok {
		return // This pair has no trained merge
	}
	left.mergeID = mergeID
	left.prio = float64(mergeID) + float64(left.origPos)/float64(chunkLen)
	heap.Push(pq, left)
}

// validMerge reports whether a popped candidate still describes two live
// adjacent nodes.
func validMerge(node *mergeNode) bool {
	return node != nil && !node.deleted && node.next != nil && !node.next.deleted
}

// applyMerge rewrites the pair rooted at left into its merged id, relinks
// the list and queues any merges the rewrite makes possible. Returns the
// possibly-changed head of the list.
func (t *Tokenizer) applyMerge(left *mergeNode, first *mergeNode, pq *mergeNodeQueue, chunkLen int) *mergeNode {
	left.deleted = true
	left.next.deleted = true

	// The previous node may sit in the queue paired with left; replace it
	// with a fresh copy so the stale entry is skipped on pop.
	if left.prev != nil {
		oldPrev := left.prev
		oldPrev.deleted = true
		newPrev := &mergeNode{
			origPos: oldPrev.origPos,
			id:      oldPrev.id,
			prev:    oldPrev.prev,
			next:    oldPrev.next,
		}
		left.prev = newPrev
		if newPrev.prev != nil {
			newPrev.prev.next = newPrev
		} else {
			first = newPrev
		}
	}

	merged := &mergeNode{
		origPos: left.origPos,
		id:      left.mergeID,
		prev:    left.prev,
		next:    left.next.next,
	}

	if merged.prev != nil {
		merged.prev.next = merged
		t.addToMergeQueue(merged.prev, pq, chunkLen)
	} else {
		first = merged
	}
	if merged.next != nil {
		merged.next.prev = merged
		t.addToMergeQueue(merged, pq, chunkLen)
	}

	return first
}

// getCached retrieves a cached chunk encoding if available.
func (t *Tokenizer) getCached(chunk string) []uint32 {
	if t.cache != nil {
		if cached, ok := t.cache.get(chunk); ok {
			return cached
		}
	}
	return nil
}

// cacheResult stores a chunk encoding for future lookups.
func (t *Tokenizer) cacheResult(chunk string, result []uint32) {
	if t.cache != nil {
		t.cache.put(chunk, result)
	}
}
