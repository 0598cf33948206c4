package parser

import (
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
)

const firstChapterLabel = "1."

// ExtractChapters keeps the numbered listing that starts at the first "1."
// and turns each non-empty line into a chapter. Names keep their labels.
// Text without a "1." produces no chapters.
func ExtractChapters(text string) []domain.Chapter {
	chapters := []domain.Chapter{}

	start := strings.Index(text, firstChapterLabel)
	if start < 0 {
		return chapters
	}

	for _, line := range splitLines(text[start:]) {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		chapters = append(chapters, domain.Chapter{
			ID:     len(chapters) + 1,
			Name:   name,
			Topics: []domain.Topic{},
		})
	}

	return chapters
}
