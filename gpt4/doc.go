// Package gpt4 implements a trainable byte-level BPE tokenizer in Go.
//
// The package provides both sides of Byte Pair Encoding: a trainer that
// learns merge rules from a stream of documents, and an encoder that applies
// a trained merge table to new text. Both sides share the GPT-4
// pre-tokenization pattern, so a merge table trained here interoperates with
// other implementations of that pattern.
//
// # Overview
//
// Encoding is a three-stage process:
//
//  1. Special-token splitting: exact occurrences of registered special
//     tokens become single ids
//  2. Pre-tokenization: remaining text is split into chunks by the GPT-4
//     pattern (contractions, words, short digit runs, punctuation,
//     whitespace)
//  3. BPE: each chunk starts as raw bytes (ids 0-255) and adjacent pairs
//     are merged in training order until no trained pair remains
//
// Training builds the merge table the encoder replays. The trainer
// pre-tokenizes the corpus in parallel waves, counts every adjacent symbol
// pair weighted by chunk multiplicity, and then repeatedly merges the most
// frequent pair. The pair-frequency index is maintained incrementally: each
// merge emits deltas for the pairs it destroys and creates, and a max-heap
// with lazy invalidation tracks the current best candidate without
// rescanning the corpus.
//
//	┌─────────────┐                  ┌──────────────┐
//	│  Documents  │                  │  Input Text  │
//	└──────┬──────┘                  └──────┬───────┘
//	       ▼                                ▼
//	┌─────────────────┐            ┌─────────────────┐
//	│ Pre-tokenize    │            │ Special-token   │
//	│ (parallel waves)│            │ splitting       │
//	└──────┬──────────┘            └──────┬──────────┘
//	       ▼                              ▼
//	┌─────────────────┐            ┌─────────────────┐
//	│ Pair counting   │            │ Pre-tokenize    │
//	│ (parallel)      │            └──────┬──────────┘
//	└──────┬──────────┘                   ▼
//	       ▼                       ┌─────────────────┐
//	┌─────────────────┐   merges   │ BPE per chunk   │
//	│ Merge loop      │──────────▶ │ (with caching)  │
//	│ (heap + deltas) │            └──────┬──────────┘
//	└─────────────────┘                   ▼
//	                               ┌─────────────────┐
//	                               │ Token ids       │
//	                               └─────────────────┘
//
// # Basic Usage
//
//	tokenizer, err := gpt4.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Train on a document stream (one document per line here)
//	src := bufio.NewScanner(corpusFile)
//	if err := tokenizer.Train(src, 50000, 0); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text to token ids
//	tokens := tokenizer.Encode("Hello, world!")
//
//	// Batches encode independently, in parallel when large
//	batches := tokenizer.EncodeBatch([]string{"first", "second"})
//
//	// The merge table round-trips through Merges/LoadMerges
//	trained := tokenizer.Merges()
//	fresh, _ := gpt4.New()
//	fresh.LoadMerges(trained)
//
// # Determinism
//
// Training is deterministic: candidate merges are ordered by live pair
// frequency, and frequency ties go to the lexicographically smaller pair.
// Encoding applies merges by ascending merge id with leftmost occurrences
// first, so a fixed merge table always produces the same ids.
//
// # Thread Safety
//
// Encoding is read-only over the trained tables and may run concurrently on
// any number of goroutines. Train, LoadMerges and RegisterSpecialToken
// mutate the tokenizer and must not overlap with encoding; that coordination
// is the caller's responsibility.
package gpt4
