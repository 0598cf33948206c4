// Package parser turns the assistant's free-text answers into plan structures.
// None of the parsers fail: text that does not follow the expected layout
// yields an empty result.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bnema/ihaveaplan/internal/domain"
)

var outlineLabel = regexp.MustCompile(`^[\d.]+\s*`)

type outlineNode struct {
	topic    domain.Topic
	level    int
	children []int
}

type stackEntry struct {
	node  int
	level int
}

// ParseOutline builds a topic forest from a numbered, indented outline.
// Nesting follows indentation only; the numeric labels are stripped from
// titles and ids are the line positions in the input.
func ParseOutline(text string) []domain.Topic {
	lines := splitLines(text)

	arena := make([]outlineNode, 0, len(lines))
	var roots []int
	var stack []stackEntry

	for i, line := range lines {
		if !keepOutlineLine(line, i, len(lines)) {
			continue
		}

		level := indentation(line)
		title := outlineLabel.ReplaceAllString(strings.TrimSpace(line), "")

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		node := outlineNode{
			topic: domain.Topic{ID: i, Title: title, Path: title},
			level: level,
		}
		idx := len(arena)

		if len(stack) == 0 {
			roots = append(roots, idx)
		} else {
			parent := stack[len(stack)-1].node
			parentID := arena[parent].topic.ID
			node.topic.ParentID = &parentID
			node.topic.Path = domain.JoinPath(arena[parent].topic.Path, title)
			arena[parent].children = append(arena[parent].children, idx)
		}

		arena = append(arena, node)
		stack = append(stack, stackEntry{node: idx, level: level})
	}

	topics := make([]domain.Topic, 0, len(roots))
	for _, root := range roots {
		topics = append(topics, materialize(arena, root))
	}
	return topics
}

func keepOutlineLine(line string, index, total int) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if index == 0 && !strings.HasPrefix(trimmed, "1.") {
		return false
	}
	if index == total-1 && !strings.ContainsFunc(trimmed, unicode.IsDigit) {
		return false
	}
	return true
}

func materialize(arena []outlineNode, idx int) domain.Topic {
	node := arena[idx]
	topic := node.topic
	if len(node.children) > 0 {
		topic.Children = make([]domain.Topic, 0, len(node.children))
		for _, child := range node.children {
			topic.Children = append(topic.Children, materialize(arena, child))
		}
	}
	return topic
}

func indentation(line string) int {
	level := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		level++
	}
	return level
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
