package gpt4

// pretokenize splits text into chunks, one per match of the pre-tokenization
// pattern. Matches are non-overlapping and taken left to right in the
// pattern's branch order; the pattern covers every byte of valid UTF-8
// input, so nothing is dropped in practice.
func (t *Tokenizer) pretokenize(text string) []string {
	if text == "" {
		return nil
	}
	chunks := make([]string, 0, len(text)/estimatedBytesPerToken+1)
	m, err := t.pattern.FindStringMatch(text)
	for err == nil && m != nil {
		chunks = append(chunks, m.String())
		m, err = t.pattern.FindNextMatch(m)
	}
	// err is only non-nil when a match timeout is configured; the pattern is
	// compiled without one.
	return chunks
}
