package quiz

import (
	"context"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_ExtractsArrayFromProse(t *testing.T) {
	gen := &fakeGenerator{reply: "Sure! Here is your quiz:\n```json\n" + validQuizJSON + "\n```\nGood luck."}
	s := NewSynthesizer(gen, 0)

	quiz, err := s.Synthesize(context.Background(), "some transcript", "Go Tour", 2, engine.KindTranscript)
	require.NoError(t, err)
	require.Len(t, quiz, 2)
	assert.Equal(t, "B", quiz[0].CorrectAnswer)
	assert.Equal(t, "A", quiz[1].CorrectAnswer, "lower-case letters are normalized")
	assert.Equal(t, []string{"A cat", "A dog", "A bird", "A fish"}, quiz[0].Options)
}

func TestSynthesize_MissingBrackets(t *testing.T) {
	for _, reply := range []string{
		"I cannot help with that.",
		`{"question": "no array"}`,
		"] reversed [",
	} {
		gen := &fakeGenerator{reply: reply}
		_, err := NewSynthesizer(gen, 0).Synthesize(context.Background(), "c", "t", 3, engine.KindTranscript)
		assert.ErrorIs(t, err, engine.ErrMalformedResponse, "reply %q", reply)
	}
}

func TestSynthesize_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errBoom}
	_, err := NewSynthesizer(gen, 0).Synthesize(context.Background(), "c", "t", 3, engine.KindTranscript)
	require.ErrorIs(t, err, engine.ErrSynthesis)
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, engine.ErrMalformedResponse)
}

func TestSynthesize_PromptFlavourAndTruncation(t *testing.T) {
	gen := &fakeGenerator{reply: validQuizJSON}
	s := NewSynthesizer(gen, 20)

	long := strings.Repeat("word ", 100)
	_, err := s.Synthesize(context.Background(), long, "Title X", 2, engine.KindDescription)
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)

	p := gen.prompts[0]
	assert.Contains(t, p, "DESCRIPTION:")
	assert.Contains(t, p, "Title X")
	assert.Contains(t, p, "exactly 2 multiple-choice questions")
	assert.NotContains(t, p, long, "content must be truncated")

	gen.prompts = nil
	_, err = s.Synthesize(context.Background(), "short", "T", 2, engine.KindTranscript)
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "TRANSCRIPT:")
}

func TestParseQuiz_Validation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty array", `[]`},
		{"not json", `[this is not json]`},
		{"three options", `[{"question":"q","options":["a","b","c"],"correct_answer":"A","explanation":""}]`},
		{"missing question", `[{"question":" ","options":["a","b","c","d"],"correct_answer":"A","explanation":""}]`},
		{"answer out of range", `[{"question":"q","options":["a","b","c","d"],"correct_answer":"E","explanation":""}]`},
		{"answer is a word", `[{"question":"q","options":["a","b","c","d"],"correct_answer":"Because","explanation":""}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuiz(tt.raw)
			assert.ErrorIs(t, err, engine.ErrMalformedResponse)
		})
	}
}

func TestAnswerLabel(t *testing.T) {
	opts := []string{"Paris", "London", "Berlin", "Madrid"}
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"A", "A", true},
		{"d", "D", true},
		{" C ", "C", true},
		{"B)", "B", true},
		{"c. Berlin", "C", true},
		{"Madrid", "D", true},
		{"london", "B", true},
		{"", "", false},
		{"Rome", "", false},
		{"E", "", false},
	}
	for _, tt := range tests {
		got, ok := answerLabel(tt.in, opts)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("answerLabel(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAnswerLabel_OptionTextBeatsLeadingLetter(t *testing.T) {
	tests := []struct {
		options []string
		in      string
		want    string
	}{
		{[]string{"A dog", "A cat", "A bird", "A fish"}, "A cat", "B"},
		{[]string{"A dog", "A cat", "A bird", "A fish"}, "a fish", "D"},
		{[]string{"Go", "Rust", "Zig", "C++"}, "C++", "D"},
		{[]string{"D 42", "B 7", "12", "A 1"}, "D 42", "A"},
		{[]string{"A dog", "A cat", "A bird", "A fish"}, "C", "C"},
	}
	for _, tt := range tests {
		got, ok := answerLabel(tt.in, tt.options)
		if !ok || got != tt.want {
			t.Errorf("answerLabel(%q, %q) = %q, %v; want %q", tt.in, tt.options, got, ok, tt.want)
		}
	}
}

func TestParseQuiz_AnswerGivenAsOptionText(t *testing.T) {
	raw := `[{"question":"Which animal barks?","options":["A cat","A dog","A bird","A fish"],"correct_answer":"A dog","explanation":"Dogs bark."}]`
	quiz, err := ParseQuiz(raw)
	require.NoError(t, err)
	assert.Equal(t, "B", quiz[0].CorrectAnswer)
}
