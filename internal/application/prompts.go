package application

import "fmt"

const runInstructions = "Answer only from the uploaded document. Follow the requested output format exactly and do not add introductions or closing remarks."

const DefaultQuizCount = 5

func chaptersPrompt(planName string) string {
	goal := "study the uploaded document"
	if planName != "" {
		goal = fmt.Sprintf("learn %q from the uploaded document", planName)
	}

	return fmt.Sprintf(`I want to %s. Split the material into the chapters of a learning plan.
List one chapter per line, numbered "1.", "2.", "3." and so on, with the chapter name after the number.
Output only the numbered list.`, goal)
}

func topicsPrompt(chapter string) string {
	return fmt.Sprintf(`Create a detailed outline of topics and subtopics for the chapter %q of the uploaded document.
Number the entries hierarchically ("1.", "1.1", "1.1.1") with one entry per line.
Indent every subtopic by two more spaces than its parent.
Output only the outline.`, chapter)
}

func quizPrompt(chapter string, topicPath string, count int) string {
	return fmt.Sprintf(`Write %d quiz questions about %q in the chapter %q of the uploaded document.
For each question write a line starting with "Question:" followed by a line starting with "Answer:".
Output only the questions and answers.`, count, topicPath, chapter)
}

func explainPrompt(chapter string, topicPath string) string {
	return fmt.Sprintf(`Explain the topic %q from the chapter %q of the uploaded document.
Cover the key ideas and give an example where the document provides one.`, topicPath, chapter)
}

func keyTopicsPrompt(chapter string) string {
	return fmt.Sprintf(`List the key topics a learner must master in the chapter %q of the uploaded document, with one short sentence each.`, chapter)
}
