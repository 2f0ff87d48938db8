package engine

// Source names the acquisition strategy that produced quiz content.
type Source string

const (
	SourceTranscript  Source = "transcript"
	SourceCaptions    Source = "captions"
	SourceDescription Source = "description"
)

// ContentKind selects the prompt flavour for the synthesizer.
type ContentKind string

const (
	KindTranscript  ContentKind = "transcript"
	KindDescription ContentKind = "description"
)

// Kind maps a source to its prompt flavour: caption tracks are spoken text
// just like transcripts; only the description gets its own prompt.
func (s Source) Kind() ContentKind {
	if s == SourceDescription {
		return KindDescription
	}
	return KindTranscript
}

// VideoInfo is the basic metadata every request needs before any strategy runs.
type VideoInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Content is the text a strategy produced, tagged with its origin.
type Content struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// QuizQuestion is a single multiple-choice item.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`        // exactly 4, labelled A-D in order
	CorrectAnswer string   `json:"correct_answer"` // "A".."D"
	Explanation   string   `json:"explanation"`
}

// Quiz is an ordered list of questions.
type Quiz []QuizQuestion

// AnswerLabels are the option labels in display order.
var AnswerLabels = []string{"A", "B", "C", "D"}
