package search

// splitWords splits text on runs of the ASCII space character, returning
// the non-empty tokens in input order. Any number of consecutive spaces
// acts as a single delimiter. Tabs and newlines are not word separators —
// the space character is the only recognized whitespace, matching the
// source's character-by-character splitter.
func splitWords(text string) []string {
	words := make([]string, 0, 8)
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// isValidText reports whether text contains no control byte (value < 32).
// The space character (32) is not itself a control byte under this check.
func isValidText(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < 32 {
			return false
		}
	}
	return true
}
