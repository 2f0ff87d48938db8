package engine

import "fmt"

// LLM prompt templates: data only, no logic beyond formatting.

// quizSchema is the per-question object the LLM must emit.
const quizSchema = `{
  "question": "The question text",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correct_answer": "The correct option label (A, B, C, or D)",
  "explanation": "Explanation of why this is the correct answer"
}`

// transcriptQuizPrompt is the quiz prompt from spoken content (transcript or captions).
// Args: title, transcript, count, schema.
const transcriptQuizPrompt = `Generate a quiz based on the following transcript from the YouTube video titled "%s".

TRANSCRIPT:
%s

Create exactly %d multiple-choice questions with 4 options each.

Format the response as a JSON array where every element has this structure:
%s

Rules:
- options must contain exactly 4 strings, in the order A, B, C, D
- correct_answer must be a single letter: A, B, C, or D
- Only return valid JSON. No additional text before or after the JSON array. No markdown.`

// descriptionQuizPrompt builds the quiz from title + description when no spoken text exists.
// Args: title, description, count, schema.
const descriptionQuizPrompt = `Generate a quiz based on the following YouTube video title and description.

TITLE: %s

DESCRIPTION:
%s

Create exactly %d multiple-choice questions with 4 options each.

Format the response as a JSON array where every element has this structure:
%s

Rules:
- options must contain exactly 4 strings, in the order A, B, C, D
- correct_answer must be a single letter: A, B, C, or D
- Only return valid JSON. No additional text before or after the JSON array. No markdown.`

// QuizPrompt renders the instruction for the given content kind.
func QuizPrompt(kind ContentKind, title, content string, count int) string {
	tmpl := transcriptQuizPrompt
	if kind == KindDescription {
		tmpl = descriptionQuizPrompt
	}
	return fmt.Sprintf(tmpl, title, content, count, quizSchema)
}
