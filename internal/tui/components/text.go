package components

import (
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/snips/internal/tui/styles"
)

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)

		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// highlightMatches renders text with the bytes at matchedIndexes emphasised
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive characters with the same style
	var result, batch strings.Builder
	batchMatch := false
	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if batchMatch {
			result.WriteString(match.Render(batch.String()))
		} else {
			result.WriteString(normal.Render(batch.String()))
		}
		batch.Reset()
	}

	for i, r := range text {
		if matchSet[i] != batchMatch {
			flush()
			batchMatch = matchSet[i]
		}
		batch.WriteRune(r)
	}
	flush()

	return result.String()
}
