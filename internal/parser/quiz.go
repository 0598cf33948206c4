package parser

import (
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
)

const (
	questionPrefix = "Question:"
	answerPrefix   = "Answer:"
)

type quizTarget int

const (
	targetNone quizTarget = iota
	targetQuestion
	targetAnswer
)

// ParseQuizzes reads "Question:"/"Answer:" pairs. Lines without a marker
// continue whichever field is being collected. A question left without an
// answer is kept with an empty answer.
func ParseQuizzes(text string) []domain.Quiz {
	quizzes := []domain.Quiz{}

	var question, answer []string
	target := targetNone

	flush := func() {
		q := strings.TrimSpace(strings.Join(question, "\n"))
		if q == "" {
			return
		}
		quizzes = append(quizzes, domain.Quiz{
			ID:       len(quizzes) + 1,
			Question: q,
			Answer:   strings.TrimSpace(strings.Join(answer, "\n")),
		})
	}

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, questionPrefix):
			flush()
			question = []string{strings.TrimSpace(strings.TrimPrefix(trimmed, questionPrefix))}
			answer = nil
			target = targetQuestion
		case strings.HasPrefix(trimmed, answerPrefix):
			answer = []string{strings.TrimSpace(strings.TrimPrefix(trimmed, answerPrefix))}
			target = targetAnswer
		case target == targetQuestion:
			question = append(question, line)
		case target == targetAnswer:
			answer = append(answer, line)
		}
	}
	flush()

	return quizzes
}
