package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const PathSeparator = " > "

type Plan struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

type Chapter struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Topics    []Topic `json:"topics"`
	Done      bool    `json:"done"`
	KeyTopics string  `json:"keyTopics,omitempty"`
}

// Topic is a node of a chapter outline. ParentID refers to the enclosing
// topic by id and is only used for lookups; Children owns the subtree.
type Topic struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Path     string  `json:"path"`
	Children []Topic `json:"children,omitempty"`
	ParentID *int    `json:"parent_id,omitempty"`
	Content  string  `json:"content,omitempty"`
	Quizzes  []Quiz  `json:"quizzes,omitempty"`
	Done     bool    `json:"done"`
}

type Quiz struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Done     bool   `json:"done"`
}

func NewPlan(name string) Plan {
	return Plan{Name: name, Chapters: []Chapter{}}
}

func (p Plan) TotalChapters() int {
	return len(p.Chapters)
}

func (p Plan) IsEmpty() bool {
	return p.Name == "" && len(p.Chapters) == 0
}

// Clear resets the plan to the empty plan.
func (p *Plan) Clear() {
	*p = NewPlan("")
}

func (p Plan) CompletedChapters() int {
	done := 0
	for _, chapter := range p.Chapters {
		if chapter.Done {
			done++
		}
	}
	return done
}

func (p *Plan) Chapter(id int) (*Chapter, error) {
	for i := range p.Chapters {
		if p.Chapters[i].ID == id {
			return &p.Chapters[i], nil
		}
	}
	return nil, fmt.Errorf("chapter %d: %w", id, ErrChapterNotFound)
}

// Topic finds a topic anywhere in the chapter outline.
func (c *Chapter) Topic(id int) (*Topic, error) {
	if topic, ok := NewTopicIndex(c.Topics).Lookup(id); ok {
		return topic, nil
	}
	return nil, fmt.Errorf("topic %d in chapter %d: %w", id, c.ID, ErrTopicNotFound)
}

// TopicIndex maps topic ids to nodes of a single outline. Parent links come
// from the tree shape, so outlines without parent ids resolve as well.
type TopicIndex struct {
	nodes   map[int]*Topic
	parents map[int]int
}

func NewTopicIndex(topics []Topic) TopicIndex {
	index := TopicIndex{nodes: map[int]*Topic{}, parents: map[int]int{}}
	index.add(topics, nil)
	return index
}

func (idx TopicIndex) add(topics []Topic, parent *Topic) {
	for i := range topics {
		idx.nodes[topics[i].ID] = &topics[i]
		if parent != nil {
			idx.parents[topics[i].ID] = parent.ID
		}
		idx.add(topics[i].Children, &topics[i])
	}
}

func (idx TopicIndex) Lookup(id int) (*Topic, bool) {
	topic, ok := idx.nodes[id]
	return topic, ok
}

// Ancestors returns the chain from the root down to the topic's parent.
func (idx TopicIndex) Ancestors(id int) []*Topic {
	if _, ok := idx.nodes[id]; !ok {
		return nil
	}

	var chain []*Topic
	for parentID, ok := idx.parents[id]; ok; parentID, ok = idx.parents[parentID] {
		chain = append([]*Topic{idx.nodes[parentID]}, chain...)
		if len(chain) > len(idx.nodes) {
			break
		}
	}
	return chain
}

// Path joins the titles from the outline root down to the topic. It is
// empty for an unknown id.
func (idx TopicIndex) Path(id int) string {
	topic, ok := idx.nodes[id]
	if !ok {
		return ""
	}

	ancestors := idx.Ancestors(id)
	titles := make([]string, 0, len(ancestors)+1)
	for _, ancestor := range ancestors {
		titles = append(titles, ancestor.Title)
	}
	return JoinPath(append(titles, topic.Title)...)
}

func JoinPath(titles ...string) string {
	return strings.Join(titles, PathSeparator)
}

func CountTopics(topics []Topic) int {
	total := 0
	for _, topic := range topics {
		total += 1 + CountTopics(topic.Children)
	}
	return total
}

func (p Plan) ToJSON() ([]byte, error) {
	if p.Chapters == nil {
		p.Chapters = []Chapter{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

func PlanFromJSON(data []byte) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, &ValidationError{Field: "plan", Reason: fmt.Sprintf("invalid plan json: %v", err)}
	}
	if plan.Chapters == nil {
		plan.Chapters = []Chapter{}
	}
	return plan, nil
}
