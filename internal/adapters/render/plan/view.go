// Package plan renders a study plan as a styled terminal outline.
package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	progressBarWidth = 24
	indentUnit       = "  "
	excerptLength    = 80
)

type RenderOptions struct {
	// ChapterID limits output to one chapter when non-zero.
	ChapterID int
	// Details adds key topics, content excerpts and quizzes.
	Details bool
}

func renderView(plan domain.Plan, opts RenderOptions, s styles) string {
	name := strings.TrimSpace(plan.Name)
	if name == "" {
		name = "Untitled plan"
	}

	total := plan.TotalChapters()
	done := plan.CompletedChapters()
	lines := []string{
		s.title.Render(name),
		s.header.Render(fmt.Sprintf("chapters: %d", total)),
	}

	if total == 0 {
		lines = append(lines, s.empty.Render("No chapters yet. Run 'iplan plan chapters' to create them."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, progressLine("completed:", done, total, s))

	for _, chapter := range plan.Chapters {
		if opts.ChapterID != 0 && chapter.ID != opts.ChapterID {
			continue
		}
		lines = append(lines, s.section.Render(renderChapter(chapter, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderChapter(chapter domain.Chapter, opts RenderOptions, s styles) string {
	title := s.chapter
	if chapter.Done {
		title = s.chapterOK
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			title.Render(fmt.Sprintf("%s %s", checkbox(chapter.Done), chapter.Name)),
			" ",
			s.topicID.Render(fmt.Sprintf("(chapter %d)", chapter.ID)),
		),
	}

	if opts.Details && strings.TrimSpace(chapter.KeyTopics) != "" {
		parts = append(parts, s.detail.Render(indentUnit+"key topics: "+excerpt(chapter.KeyTopics)))
	}

	if len(chapter.Topics) == 0 {
		parts = append(parts, s.empty.Render(indentUnit+"no topics yet"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	totalTopics := domain.CountTopics(chapter.Topics)
	parts = append(parts, indentUnit+progressLine("topics:", countDone(chapter.Topics), totalTopics, s))
	parts = append(parts, renderTopics(chapter.Topics, 1, opts, s)...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTopics(topics []domain.Topic, depth int, opts RenderOptions, s styles) []string {
	lines := make([]string, 0, len(topics))
	indent := strings.Repeat(indentUnit, depth)

	for _, topic := range topics {
		style := s.topic
		if topic.Done {
			style = s.topicOK
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			indent,
			style.Render(fmt.Sprintf("%s %s", checkbox(topic.Done), topic.Title)),
			" ",
			s.topicID.Render(fmt.Sprintf("#%d", topic.ID)),
		))

		if opts.Details {
			lines = append(lines, topicDetails(topic, indent+indentUnit+indentUnit, s)...)
		}
		lines = append(lines, renderTopics(topic.Children, depth+1, opts, s)...)
	}

	return lines
}

func topicDetails(topic domain.Topic, indent string, s styles) []string {
	var lines []string
	if content := strings.TrimSpace(topic.Content); content != "" {
		lines = append(lines, indent+s.detail.Render(excerpt(content)))
	}
	for _, quiz := range topic.Quizzes {
		lines = append(lines, indent+s.question.Render(fmt.Sprintf("%s Q%d: %s", checkbox(quiz.Done), quiz.ID, excerpt(quiz.Question))))
		if quiz.Answer != "" {
			lines = append(lines, indent+indentUnit+s.detail.Render("A: "+excerpt(quiz.Answer)))
		}
	}
	return lines
}

func progressLine(label string, done int, total int, s styles) string {
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total) * 100
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.header.Render(label),
		" ",
		renderProgressBar(percent, progressBarWidth, s),
		" ",
		s.barText.Render(fmt.Sprintf("%d/%d", done, total)),
	)
}

func renderProgressBar(donePercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(donePercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func countDone(topics []domain.Topic) int {
	done := 0
	for _, topic := range topics {
		if topic.Done {
			done++
		}
		done += countDone(topic.Children)
	}
	return done
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// excerpt flattens text to one line of at most excerptLength runes.
func excerpt(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= excerptLength {
		return flat
	}
	return string(runes[:excerptLength-1]) + "…"
}
