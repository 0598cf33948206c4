package toml

import "github.com/bnema/ihaveaplan/internal/domain"

const currentPlanSchemaVersion = 1

type planFileSchema struct {
	Version  int             `toml:"version"`
	Name     string          `toml:"name"`
	Chapters []chapterSchema `toml:"chapters"`
}

type chapterSchema struct {
	ID        int           `toml:"id"`
	Name      string        `toml:"name"`
	Done      bool          `toml:"done"`
	KeyTopics string        `toml:"key_topics,omitempty"`
	Topics    []topicSchema `toml:"topics,omitempty"`
}

type topicSchema struct {
	ID       int           `toml:"id"`
	Title    string        `toml:"title"`
	Path     string        `toml:"path"`
	ParentID *int          `toml:"parent_id,omitempty"`
	Done     bool          `toml:"done"`
	Content  string        `toml:"content,omitempty"`
	Quizzes  []quizSchema  `toml:"quizzes,omitempty"`
	Children []topicSchema `toml:"children,omitempty"`
}

type quizSchema struct {
	ID       int    `toml:"id"`
	Question string `toml:"question"`
	Answer   string `toml:"answer"`
	Done     bool   `toml:"done"`
}

func toPlanSchema(plan domain.Plan) planFileSchema {
	file := planFileSchema{
		Version:  currentPlanSchemaVersion,
		Name:     plan.Name,
		Chapters: make([]chapterSchema, 0, len(plan.Chapters)),
	}
	for _, chapter := range plan.Chapters {
		file.Chapters = append(file.Chapters, chapterSchema{
			ID:        chapter.ID,
			Name:      chapter.Name,
			Done:      chapter.Done,
			KeyTopics: chapter.KeyTopics,
			Topics:    toTopicSchemas(chapter.Topics),
		})
	}
	return file
}

func toTopicSchemas(topics []domain.Topic) []topicSchema {
	if len(topics) == 0 {
		return nil
	}

	out := make([]topicSchema, 0, len(topics))
	for _, topic := range topics {
		encoded := topicSchema{
			ID:       topic.ID,
			Title:    topic.Title,
			Path:     topic.Path,
			ParentID: copyID(topic.ParentID),
			Done:     topic.Done,
			Content:  topic.Content,
			Children: toTopicSchemas(topic.Children),
		}
		for _, quiz := range topic.Quizzes {
			encoded.Quizzes = append(encoded.Quizzes, quizSchema(quiz))
		}
		out = append(out, encoded)
	}
	return out
}

func fromPlanSchema(file planFileSchema) domain.Plan {
	plan := domain.NewPlan(file.Name)
	for _, chapter := range file.Chapters {
		topics := fromTopicSchemas(chapter.Topics)
		if topics == nil {
			topics = []domain.Topic{}
		}
		plan.Chapters = append(plan.Chapters, domain.Chapter{
			ID:        chapter.ID,
			Name:      chapter.Name,
			Done:      chapter.Done,
			KeyTopics: chapter.KeyTopics,
			Topics:    topics,
		})
	}
	return plan
}

func fromTopicSchemas(topics []topicSchema) []domain.Topic {
	if len(topics) == 0 {
		return nil
	}

	out := make([]domain.Topic, 0, len(topics))
	for _, topic := range topics {
		decoded := domain.Topic{
			ID:       topic.ID,
			Title:    topic.Title,
			Path:     topic.Path,
			ParentID: copyID(topic.ParentID),
			Done:     topic.Done,
			Content:  topic.Content,
			Children: fromTopicSchemas(topic.Children),
		}
		for _, quiz := range topic.Quizzes {
			decoded.Quizzes = append(decoded.Quizzes, domain.Quiz(quiz))
		}
		out = append(out, decoded)
	}
	return out
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}
