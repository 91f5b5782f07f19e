// Package gpt4 implements a trainable byte-level BPE tokenizer in Go.
// It learns merge rules from a document stream and encodes text with the
// GPT-4 pre-tokenization pattern.
package gpt4

import (
	"maps"

	"github.com/dlclark/regexp2"
)

// tokenizerConfig holds configuration during tokenizer creation
type tokenizerConfig struct {
	merges        map[Pair]uint32
	specialTokens map[string]uint32
	cacheSize     int
}

// Tokenizer is a byte-level BPE tokenizer.
//
// A Tokenizer starts with the 256 byte symbols and an empty merge table.
// Training (or LoadMerges) populates the merge table; encoding is read-only
// over the merge and special-token tables and safe to call concurrently.
// Mutating entry points (Train, LoadMerges, RegisterSpecialToken) must not
// run concurrently with encoding.
type Tokenizer struct {
	merges  map[Pair]uint32
	special map[string]uint32
	pattern *regexp2.Regexp

	// Cache for per-chunk BPE results
	cache     bpeCache
	cacheSize int // Maximum cache size (0 = unlimited)
}

// bpeCache defines the interface for BPE result caching.
type bpeCache interface {
	get(key string) ([]uint32, bool)
	put(key string, value []uint32)
}

// New creates a tokenizer with an empty merge table and compiles the
// pre-tokenization pattern. A compile failure is fatal and unrecoverable.
//
// Example:
//
//	tokenizer, err := gpt4.New()
//	if err != nil {
//	    return err
//	}
//
//	// With a previously trained merge table:
//	tokenizer, err := gpt4.New(
//	    gpt4.WithMerges(merges),
//	)
//
//	// With a cache size limit:
//	tokenizer, err := gpt4.New(
//	    gpt4.WithCacheSize(1000),
//	)
func New(opts ...Option) (*Tokenizer, error) {
	// Default configuration
	config := &tokenizerConfig{
		cacheSize: defaultCacheSize,
	}

	// Apply options to configuration
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	re, err := regexp2.Compile(compiledPattern, regexp2.None)
	if err != nil {
		return nil, NewConfigError("pattern", compiledPattern, err)
	}

	t := &Tokenizer{
		merges:    make(map[Pair]uint32),
		special:   make(map[string]uint32),
		pattern:   re,
		cacheSize: config.cacheSize,
	}
	t.resetCache()

	if config.merges != nil {
		t.merges = maps.Clone(config.merges)
	}
	for text, id := range config.specialTokens {
		t.special[text] = id
	}

	return t, nil
}

// resetCache discards all cached chunk encodings. Called whenever the merge
// table changes, since cached results are derived from it.
func (t *Tokenizer) resetCache() {
	if t.cacheSize == 0 {
		t.cache = &simpleCache{cache: make(map[string][]uint32)}
	} else {
		t.cache = newLRUCache(t.cacheSize)
	}
}

// RegisterSpecialToken maps the exact text to id during encoding. A second
// registration for the same text overwrites the first.
func (t *Tokenizer) RegisterSpecialToken(text string, id uint32) {
	t.special[text] = id
}

// SpecialTokens returns a copy of the special-token table.
func (t *Tokenizer) SpecialTokens() map[string]uint32 {
	return maps.Clone(t.special)
}

// Merges returns a copy of the merge table. Keys are symbol pairs, values
// the ids they merge into; ids order the merges as they were trained.
func (t *Tokenizer) Merges() map[Pair]uint32 {
	return maps.Clone(t.merges)
}

// LoadMerges replaces the merge table. The table is not validated: id
// contiguity and pair consistency are the caller's responsibility.
func (t *Tokenizer) LoadMerges(merges map[Pair]uint32) {
	t.merges = make(map[Pair]uint32, len(merges))
	maps.Copy(t.merges, merges)
	t.resetCache()
}

// VocabSize returns 256 plus the number of trained merges. Special tokens
// live in their own id space and are not counted.
func (t *Tokenizer) VocabSize() int {
	return baseVocabSize + len(t.merges)
}

// Pattern returns the canonical pre-tokenization pattern string.
func (t *Tokenizer) Pattern() string {
	return Pattern
}
