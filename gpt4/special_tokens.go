package gpt4

import (
	"sort"
	"strings"
)

// segment is a piece of input produced by special-token splitting. Special
// segments bypass pre-tokenization and encode to exactly one id.
type segment struct {
	text    string
	special bool
}

// splitBySpecialTokens splits text into plain segments and exact occurrences
// of registered special tokens. The leftmost occurrence wins; at the same
// position a longer token beats any token it has as a prefix.
func (t *Tokenizer) splitBySpecialTokens(text string) []segment {
	if len(t.special) == 0 || text == "" {
		return []segment{{text: text}}
	}

	tokens := make([]string, 0, len(t.special))
	for tok := range t.special {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	result := make([]segment, 0, 2)
	for len(text) > 0 {
		nextPos := len(text)
		nextLen := 0
		for _, tok := range tokens {
			// Strict < keeps the earlier longest-first winner on position ties.
			if idx := strings.Index(text, tok); idx >= 0 && idx < nextPos {
				nextPos, nextLen = idx, len(tok)
			}
		}
		if nextPos > 0 {
			result = append(result, segment{text: text[:nextPos]})
		}
		if nextLen > 0 {
			result = append(result, segment{text: text[nextPos : nextPos+nextLen], special: true})
		}
		text = text[nextPos+nextLen:]
	}
	return result
}
