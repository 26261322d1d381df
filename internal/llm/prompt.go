package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"pdfapi/internal/model"
)

const summaryPrompt = `Summarize the following document in a few concise paragraphs.
Keep the language of the document.

Document:
%s`

// Summarize asks g for a summary of text. Text longer than maxChars runes is
// truncated; maxChars <= 0 disables truncation.
func Summarize(ctx context.Context, g Generator, text string, maxChars int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text to summarize", model.ErrEmptyInput)
	}
	return g.Generate(ctx, fmt.Sprintf(summaryPrompt, truncate(text, maxChars)))
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}
