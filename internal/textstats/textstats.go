// Package textstats derives word and paragraph counts from essay text.
package textstats

import (
	"strings"

	"github.com/samber/lo"
)

// WordCount returns the number of maximal whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ParagraphCount returns the number of newline-delimited lines that are not
// blank once trimmed.
func ParagraphCount(text string) int {
	if text == "" {
		return 0
	}
	return lo.CountBy(strings.Split(text, "\n"), func(line string) bool {
		return strings.TrimSpace(line) != ""
	})
}

// Counts returns both derived counts for text.
func Counts(text string) (words, paragraphs int) {
	return WordCount(text), ParagraphCount(text)
}
