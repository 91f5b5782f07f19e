package gpt4cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/agentstation/bpe/gpt4"
)

// mergeEntry is one merge rule in the JSON merge-table format.
type mergeEntry struct {
	A  uint32 `json:"a"`
	B  uint32 `json:"b"`
	ID uint32 `json:"id"`
}

// saveMerges writes a merge table to path as a JSON array ordered by merge id.
func saveMerges(path string, merges map[gpt4.Pair]uint32) error {
	entries := make([]mergeEntry, 0, len(merges))
	for pair, id := range merges {
		entries = append(entries, mergeEntry{A: pair.A, B: pair.B, ID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal merges: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write merges %s: %w", path, err)
	}
	return nil
}

// loadMerges reads a merge table previously written by saveMerges.
func loadMerges(path string) (map[gpt4.Pair]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read merges %s: %w", path, err)
	}
	var entries []mergeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse merges %s: %w", path, err)
	}
	merges := make(map[gpt4.Pair]uint32, len(entries))
	for _, e := range entries {
		merges[gpt4.Pair{A: e.A, B: e.B}] = e.ID
	}
	return merges, nil
}

// newTokenizer builds a tokenizer, loading the merge table when a path is
// given.
func newTokenizer(mergesPath string) (*gpt4.Tokenizer, error) {
	if mergesPath == "" {
		return gpt4.New()
	}
	merges, err := loadMerges(mergesPath)
	if err != nil {
		return nil, err
	}
	return gpt4.New(gpt4.WithMerges(merges))
}
