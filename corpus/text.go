package corpus

import "strings"

const (
	// Words shorter than this are not indexed.
	minWordLength = 3

	// Each entry contributes at most this many distinct words to the
	// word index, to cap index size.
	maxIndexedWords = 50
)

// Stop words excluded from the word index and from query tokenization
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"not": true, "with": true, "you": true, "this": true, "but": true,
	"that": true, "have": true, "from": true,
}

// extractWords splits text into normalized index words: lowercased,
// punctuation stripped, stop words and words shorter than minWordLength
// removed, deduplicated, capped at maxIndexedWords.
func extractWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, word := range fields {
		if len(word) < minWordLength || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
		if len(words) >= maxIndexedWords {
			break
		}
	}

	return words
}

// normalizeKey lowercases and trims an index key (category, device, tag).
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
