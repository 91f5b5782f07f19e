package gpt4

import (
	"reflect"
	"testing"
)

// sumDeltas folds a delta list into net per-pair changes, dropping pairs
// whose changes cancel out.
func sumDeltas(deltas []pairDelta) map[Pair]int32 {
	sums := make(map[Pair]int32)
	for _, d := range deltas {
		sums[d.pair] += d.delta
	}
	for p, v := range sums {
		if v == 0 {
			delete(sums, p)
		}
	}
	return sums
}

func TestMergePair(t *testing.T) {
	tests := []struct {
		name       string
		ids        []uint32
		pair       Pair
		newID      uint32
		wantIDs    []uint32
		wantDeltas map[Pair]int32
	}{
		{
			name:    "single_occurrence",
			ids:     []uint32{116, 104, 101},
			pair:    Pair{116, 104},
			newID:   256,
			wantIDs: []uint32{256, 101},
			wantDeltas: map[Pair]int32{
				{116, 104}: -1,
				{104, 101}: -1,
				{256, 101}: 1,
			},
		},
		{
			name:    "overlapping_run_is_left_to_right",
			ids:     []uint32{97, 97, 97},
			pair:    Pair{97, 97},
			newID:   256,
			wantIDs: []uint32{256, 97},
			wantDeltas: map[Pair]int32{
				{97, 97}:  -2,
				{256, 97}: 1,
			},
		},
		{
			name:    "two_occurrences_with_neighbors",
			ids:     []uint32{97, 98, 99, 98, 99, 100},
			pair:    Pair{98, 99},
			newID:   256,
			wantIDs: []uint32{97, 256, 256, 100},
			wantDeltas: map[Pair]int32{
				{97, 98}:   -1,
				{97, 256}:  1,
				{98, 99}:   -2,
				{99, 98}:   -1,
				{256, 256}: 1,
				{99, 100}:  -1,
				{256, 100}: 1,
			},
		},
		{
			name:       "no_occurrence",
			ids:        []uint32{1, 2, 3},
			pair:       Pair{9, 9},
			newID:      256,
			wantIDs:    []uint32{1, 2, 3},
			wantDeltas: map[Pair]int32{},
		},
		{
			name:       "short_word_is_inert",
			ids:        []uint32{97},
			pair:       Pair{97, 97},
			newID:      256,
			wantIDs:    []uint32{97},
			wantDeltas: map[Pair]int32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := word{ids: append([]uint32(nil), tt.ids...)}
			deltas := w.mergePair(tt.pair, tt.newID)

			if !reflect.DeepEqual(w.ids, tt.wantIDs) {
				t.Errorf("ids after merge = %v, want %v", w.ids, tt.wantIDs)
			}
			if got := sumDeltas(deltas); !reflect.DeepEqual(got, tt.wantDeltas) {
				t.Errorf("deltas = %v, want %v", got, tt.wantDeltas)
			}
		})
	}
}

func TestNewWordUsesBytes(t *testing.T) {
	w := newWord("héllo")
	want := []uint32{0x68, 0xc3, 0xa9, 0x6c, 0x6c, 0x6f}
	if !reflect.DeepEqual(w.ids, want) {
		t.Errorf("newWord ids = %v, want %v", w.ids, want)
	}
}
