package gpt4

import (
	"container/heap"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DocumentSource supplies training documents one at a time. It is satisfied
// by *bufio.Scanner.
type DocumentSource interface {
	Scan() bool
	Text() string
	Err() error
}

// Train learns up to vocabSize-256 merges from the documents produced by
// source. Merge ids are assigned densely from 256 in creation order; the
// loop stops early if the corpus runs out of adjacent pairs (a pair that
// occurs only once is still merged), which leaves a smaller vocabulary and
// is not an error.
//
// bufferSize controls how many documents are pre-tokenized in one parallel
// wave; values <= 0 select a default. Training a tokenizer that has already
// been trained is undefined.
//
// Errors from source are surfaced unchanged (wrapped for context); on any
// error the merge table is in an undefined state and the tokenizer must be
// discarded.
func (t *Tokenizer) Train(source DocumentSource, vocabSize, bufferSize int) error {
	if vocabSize < baseVocabSize {
		return NewConfigError("vocab_size", vocabSize, ErrInvalidVocabSize)
	}
	if bufferSize <= 0 {
		bufferSize = defaultTrainBufferSize
	}

	chunkCounts, err := t.countChunks(source, bufferSize)
	if err != nil {
		return err
	}

	words := make([]word, 0, len(chunkCounts))
	counts := make([]int32, 0, len(chunkCounts))
	for chunk, c := range chunkCounts {
		words = append(words, newWord(chunk))
		counts = append(counts, c)
	}

	t.trainCore(words, counts, vocabSize)
	t.resetCache()
	return nil
}

// countChunks pre-tokenizes the corpus and returns the multiplicity of each
// distinct chunk. Documents are buffered into waves and each wave is split
// across workers.
func (t *Tokenizer) countChunks(source DocumentSource, bufferSize int) (map[string]int32, error) {
	total := make(map[string]int32)
	batch := make([]string, 0, bufferSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, local := range t.pretokenizeBatch(batch) {
			for chunk, c := range local {
				total[chunk] += c
			}
		}
		batch = batch[:0]
	}

	for source.Scan() {
		batch = append(batch, source.Text())
		if len(batch) >= bufferSize {
			flush()
		}
	}
	if err := source.Err(); err != nil {
		return nil, NewDataError("read documents", err)
	}
	flush()
	return total, nil
}

// pretokenizeBatch splits one wave of documents across workers, each
// building a local chunk-count map. The compiled pattern is safe for
// concurrent matching.
func (t *Tokenizer) pretokenizeBatch(docs []string) []map[string]int32 {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(docs) {
		workers = len(docs)
	}
	shard := (len(docs) + workers - 1) / workers

	locals := make([]map[string]int32, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		lo := min(i*shard, len(docs))
		hi := min(lo+shard, len(docs))
		g.Go(func() error {
			local := make(map[string]int32)
			for _, doc := range docs[lo:hi] {
				for _, chunk := range t.pretokenize(doc) {
					local[chunk]++
				}
			}
			locals[i] = local
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return locals
}

// trainCore runs the merge loop. words is owned and mutated in place;
// counts is read-only. Each iteration pops the most frequent pair, validates
// its cached count against the live index, applies the merge to every word
// in the job's snapshot and propagates the frequency deltas.
func (t *Tokenizer) trainCore(words []word, counts []int32, vocabSize int) {
	numMerges := vocabSize - baseVocabSize

	stats := countPairs(words, counts)

	queue := make(mergeQueue, 0, len(stats.counts))
	for pair, pos := range stats.positions {
		if c := stats.counts[pair]; c > 0 {
			queue = append(queue, &mergeJob{pair: pair, count: c, pos: pos})
		}
	}
	heap.Init(&queue)

	// Reused across iterations; the inner sets move onto the heap and are
	// allocated fresh each time.
	localUpdates := make(map[Pair]map[int]struct{})

	for mergesDone := 0; mergesDone < numMerges; {
		if queue.Len() == 0 {
			break
		}
		top := heap.Pop(&queue).(*mergeJob)

		// Lazy staleness check: a job is only applied when its cached count
		// still matches the live one.
		live := stats.counts[top.pair]
		if top.count != live {
			if live > 0 {
				top.count = live
				heap.Push(&queue, top)
			}
			continue
		}

		newID := uint32(baseVocabSize + mergesDone)
		t.merges[top.pair] = newID

		clear(localUpdates)
		for w := range top.pos {
			for _, d := range words[w].mergePair(top.pair, newID) {
				stats.counts[d.pair] += int64(d.delta) * int64(counts[w])
				if d.delta > 0 {
					set, ok := localUpdates[d.pair]
					if !ok {
						set = make(map[int]struct{})
						localUpdates[d.pair] = set
					}
					set[w] = struct{}{}
				}
			}
		}

		for pair, pos := range localUpdates {
			if c := stats.counts[pair]; c > 0 {
				heap.Push(&queue, &mergeJob{pair: pair, count: c, pos: pos})
			}
		}

		mergesDone++
	}
}
