package parser

import (
	"strings"
	"testing"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutlineBuildsTreeFromIndentation(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"1. Foundations",
		"  1.1 Variables",
		"    1.1.1 Scope",
		"  1.2 Functions",
		"2. Concurrency",
		"  2.1 Channels",
	}, "\n")

	topics := ParseOutline(text)
	require.Len(t, topics, 2)

	foundations := topics[0]
	assert.Equal(t, 0, foundations.ID)
	assert.Equal(t, "Foundations", foundations.Title)
	assert.Equal(t, "Foundations", foundations.Path)
	assert.Nil(t, foundations.ParentID)
	require.Len(t, foundations.Children, 2)

	variables := foundations.Children[0]
	assert.Equal(t, 1, variables.ID)
	assert.Equal(t, "Variables", variables.Title)
	assert.Equal(t, "Foundations > Variables", variables.Path)
	require.NotNil(t, variables.ParentID)
	assert.Equal(t, 0, *variables.ParentID)

	require.Len(t, variables.Children, 1)
	scope := variables.Children[0]
	assert.Equal(t, "Foundations > Variables > Scope", scope.Path)
	assert.Equal(t, 1, *scope.ParentID)

	assert.Equal(t, "Functions", foundations.Children[1].Title)
	assert.Equal(t, 3, foundations.Children[1].ID)

	assert.Equal(t, "Concurrency > Channels", topics[1].Children[0].Path)
}

func TestParseOutlineDepthMatchesIndentation(t *testing.T) {
	t.Parallel()

	const depth = 6
	lines := make([]string, depth)
	for i := range lines {
		lines[i] = strings.Repeat(" ", i) + "1. Level"
	}

	topics := ParseOutline(strings.Join(lines, "\n"))
	require.Len(t, topics, 1)

	level := 0
	node := topics[0]
	titles := []string{node.Title}
	for {
		level++
		assert.Equal(t, domain.JoinPath(titles...), node.Path)
		if len(node.Children) == 0 {
			break
		}
		node = node.Children[0]
		titles = append(titles, node.Title)
	}
	assert.Equal(t, depth, level)
}

func TestParseOutlineFiltersLines(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		text       string
		wantTitles []string
	}{
		{name: "empty", text: "", wantTitles: nil},
		{name: "no numbers", text: "no numbers here", wantTitles: nil},
		{
			name:       "preamble dropped",
			text:       "Here is your outline\n1. A\n2. B",
			wantTitles: []string{"A", "B"},
		},
		{
			name:       "closing remark dropped",
			text:       "1. A\n2. B\nGood luck!",
			wantTitles: []string{"A", "B"},
		},
		{
			name:       "blank lines skipped",
			text:       "1. A\n\n   \n2. B\n",
			wantTitles: []string{"A", "B"},
		},
		{
			name:       "windows line endings",
			text:       "1. A\r\n2. B\r\n",
			wantTitles: []string{"A", "B"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			topics := ParseOutline(tc.text)
			var titles []string
			for _, topic := range topics {
				titles = append(titles, topic.Title)
			}
			assert.Equal(t, tc.wantTitles, titles)
		})
	}
}

func TestParseOutlineIdsAreSourceLineIndexes(t *testing.T) {
	t.Parallel()

	topics := ParseOutline("Intro\n1. A\n\n2. B")
	require.Len(t, topics, 2)
	assert.Equal(t, 1, topics[0].ID)
	assert.Equal(t, 3, topics[1].ID)
}

func TestParseOutlineDedentReturnsToAncestor(t *testing.T) {
	t.Parallel()

	text := "1. A\n    1.1 B\n  1.2 C\n1.3 D"
	topics := ParseOutline(text)

	require.Len(t, topics, 2)
	require.Len(t, topics[0].Children, 2)
	assert.Equal(t, "A > B", topics[0].Children[0].Path)
	assert.Equal(t, "A > C", topics[0].Children[1].Path)
	assert.Equal(t, "D", topics[1].Path)
}

func TestParseQuizzes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []domain.Quiz
	}{
		{
			name: "pairs",
			text: "Question: Q1\nAnswer: A1\nQuestion: Q2\nAnswer: A2",
			want: []domain.Quiz{
				{ID: 1, Question: "Q1", Answer: "A1"},
				{ID: 2, Question: "Q2", Answer: "A2"},
			},
		},
		{
			name: "dangling question",
			text: "Question: Q1\nAnswer: A1\nQuestion: Q2",
			want: []domain.Quiz{
				{ID: 1, Question: "Q1", Answer: "A1"},
				{ID: 2, Question: "Q2", Answer: ""},
			},
		},
		{
			name: "multi line fields",
			text: "Intro ignored\nQuestion: What is\na goroutine?\nAnswer: A lightweight\nthread.",
			want: []domain.Quiz{
				{ID: 1, Question: "What is\na goroutine?", Answer: "A lightweight\nthread."},
			},
		},
		{
			name: "indented markers",
			text: "  Question: Q1\n\tAnswer: A1",
			want: []domain.Quiz{
				{ID: 1, Question: "Q1", Answer: "A1"},
			},
		},
		{name: "no markers", text: "nothing to see", want: []domain.Quiz{}},
		{name: "empty", text: "", want: []domain.Quiz{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseQuizzes(tc.text))
		})
	}
}

func TestExtractChapters(t *testing.T) {
	t.Parallel()

	chapters := ExtractChapters("Intro text\n1. Foo\n2. Bar\n")
	assert.Equal(t, []domain.Chapter{
		{ID: 1, Name: "1. Foo", Topics: []domain.Topic{}},
		{ID: 2, Name: "2. Bar", Topics: []domain.Topic{}},
	}, chapters)
}

func TestExtractChaptersTrimsSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	chapters := ExtractChapters("1. Foo  \r\n   2. Bar\t\n\n")
	require.Len(t, chapters, 2)
	assert.Equal(t, "1. Foo", chapters[0].Name)
	assert.Equal(t, "2. Bar", chapters[1].Name)
}

func TestExtractChaptersWithoutFirstLabelIsEmpty(t *testing.T) {
	t.Parallel()

	chapters := ExtractChapters("Chapters:\n- Foo\n- Bar")
	assert.NotNil(t, chapters)
	assert.Empty(t, chapters)
}
