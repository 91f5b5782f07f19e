package gpt4

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// pairStats is the live pair-frequency index for one training run.
//
// counts may transiently hold zero or negative values while merge deltas are
// applied; only strictly positive entries are merge candidates. positions is
// exact after construction and becomes a best-effort hint once the merge
// loop starts rewriting words.
type pairStats struct {
	counts    map[Pair]int64
	positions map[Pair]map[int]struct{}
}

func newPairStats(hint int) *pairStats {
	return &pairStats{
		counts:    make(map[Pair]int64, hint),
		positions: make(map[Pair]map[int]struct{}, hint),
	}
}

// add records one adjacent occurrence of p in word wordIdx, weighted by the
// word's multiplicity c.
func (s *pairStats) add(p Pair, c int64, wordIdx int) {
	s.counts[p] += c
	set, ok := s.positions[p]
	if !ok {
		set = make(map[int]struct{})
		s.positions[p] = set
	}
	set[wordIdx] = struct{}{}
}

// merge folds other into s. The fold is commutative and associative, so
// shards may be combined in any order.
func (s *pairStats) merge(other *pairStats) {
	for p, c := range other.counts {
		s.counts[p] += c
	}
	for p, set := range other.positions {
		dst, ok := s.positions[p]
		if !ok {
			s.positions[p] = set
			continue
		}
		for w := range set {
			dst[w] = struct{}{}
		}
	}
}

// countPairsRange builds pair statistics for words[lo:hi]. Words with fewer
// than two symbols or zero multiplicity contribute nothing.
func countPairsRange(words []word, counts []int32, lo, hi int) *pairStats {
	stats := newPairStats((hi - lo) * 2)
	for i := lo; i < hi; i++ {
		ids := words[i].ids
		if len(ids) < 2 || counts[i] == 0 {
			continue
		}
		c := int64(counts[i])
		for j := 0; j+1 < len(ids); j++ {
			stats.add(Pair{ids[j], ids[j+1]}, c, i)
		}
	}
	return stats
}

// countPairs builds the initial pair index over the whole corpus. Small
// corpora are counted sequentially; larger ones are partitioned across
// workers, each building local maps that are then folded together.
func countPairs(words []word, counts []int32) *pairStats {
	if len(words) < sequentialCountThreshold {
		return countPairsRange(words, counts, 0, len(words))
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(words) {
		workers = len(words)
	}
	shard := (len(words) + workers - 1) / workers

	locals := make([]*pairStats, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		lo := min(i*shard, len(words))
		hi := min(lo+shard, len(words))
		g.Go(func() error {
			locals[i] = countPairsRange(words, counts, lo, hi)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	total := locals[0]
	for _, local := range locals[1:] {
		total.merge(local)
	}
	return total
}
