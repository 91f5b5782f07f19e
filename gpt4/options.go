package gpt4

// Option is a functional option for configuring a Tokenizer.
type Option func(*tokenizerConfig) error

// WithMerges sets an initial merge table, as returned by Merges on a trained
// tokenizer. The table is copied and not validated, as with LoadMerges.
func WithMerges(merges map[Pair]uint32) Option {
	return func(cfg *tokenizerConfig) error {
		if merges == nil {
			return NewConfigError("merges", "nil map", ErrInvalidOption)
		}
		cfg.merges = merges
		return nil
	}
}

// WithSpecialTokens sets the initial special-token table. Token text must be
// non-empty.
func WithSpecialTokens(tokens map[string]uint32) Option {
	return func(cfg *tokenizerConfig) error {
		for text := range tokens {
			if text == "" {
				return NewConfigError("special_tokens", "empty string", ErrInvalidOption)
			}
		}
		cfg.specialTokens = tokens
		return nil
	}
}

// WithCacheSize sets the maximum number of chunk encodings kept in the BPE
// cache. The default of 0 means unlimited.
func WithCacheSize(size int) Option {
	return func(cfg *tokenizerConfig) error {
		if size < 0 {
			return NewConfigError("cache_size", size, ErrInvalidOption)
		}
		cfg.cacheSize = size
		return nil
	}
}
