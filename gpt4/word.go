package gpt4

// Pair is an ordered pair of adjacent symbol ids.
type Pair struct {
	A, B uint32
}

// less orders pairs lexicographically, first component first.
func (p Pair) less(q Pair) bool {
	if p.A != q.A {
		return p.A < q.A
	}
	return p.B < q.B
}

// word is the mutable symbol sequence for one pre-tokenized chunk. A word
// with fewer than two symbols contributes no pairs.
type word struct {
	ids []uint32
}

// newWord builds the initial byte-level symbol sequence for a chunk.
func newWord(chunk string) word {
	ids := make([]uint32, len(chunk))
	for i := 0; i < len(chunk); i++ {
		ids[i] = uint32(chunk[i])
	}
	return word{ids: ids}
}

// pairDelta records how one merge occurrence changes a pair's frequency.
// Deltas are unweighted; the caller scales them by the word's multiplicity.
type pairDelta struct {
	pair  Pair
	delta int32
}

// mergePair rewrites every occurrence of pair into newID, scanning left to
// right. Occurrences never overlap: in a run like xxx, the first two symbols
// merge and the third is left alone. The returned deltas cover the vanished
// pair itself and the neighbor pairs destroyed and created at each site.
func (w *word) mergePair(pair Pair, newID uint32) []pairDelta {
	n := len(w.ids)
	if n < 2 {
		return nil
	}
	out := make([]uint32, 0, n)
	deltas := make([]pairDelta, 0, 6)
	for i := 0; i < n; {
		if i+1 < n && w.ids[i] == pair.A && w.ids[i+1] == pair.B {
			if len(out) > 0 {
				prev := out[len(out)-1]
				deltas = append(deltas,
					pairDelta{pair: Pair{prev, pair.A}, delta: -1},
					pairDelta{pair: Pair{prev, newID}, delta: 1})
			}
			deltas = append(deltas, pairDelta{pair: pair, delta: -1})
			if i+2 < n {
				next := w.ids[i+2]
				deltas = append(deltas,
					pairDelta{pair: Pair{pair.B, next}, delta: -1},
					pairDelta{pair: Pair{newID, next}, delta: 1})
			}
			out = append(out, newID)
			i += 2
		} else {
			out = append(out, w.ids[i])
			i++
		}
	}
	w.ids = out
	return deltas
}
