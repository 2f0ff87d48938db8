package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// Generator is the generative-text collaborator: prompt in, free text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const optionsPerQuestion = 4

// Synthesizer turns content into a validated quiz via a Generator.
type Synthesizer struct {
	gen             Generator
	maxContentChars int
}

// NewSynthesizer creates a synthesizer. Content longer than maxContentChars
// runes is cut at a word boundary before it reaches the prompt; 0 disables the cap.
func NewSynthesizer(gen Generator, maxContentChars int) *Synthesizer {
	return &Synthesizer{gen: gen, maxContentChars: maxContentChars}
}

// Synthesize asks the generator for count questions about content and
// parses the reply. Generator failures are ErrSynthesis; unparseable or
// mis-shaped replies are ErrMalformedResponse.
func (s *Synthesizer) Synthesize(ctx context.Context, content, title string, count int, kind engine.ContentKind) (engine.Quiz, error) {
	if s.maxContentChars > 0 {
		content = engine.TruncateAtWord(content, s.maxContentChars)
	}
	prompt := engine.QuizPrompt(kind, title, content, count)

	slog.Info("quiz: generating", slog.String("title", title),
		slog.String("kind", string(kind)), slog.Int("questions", count))

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrSynthesis, err)
	}

	quiz, err := ParseQuiz(raw)
	if err != nil {
		engine.IncrMalformedResponses()
		slog.Error("quiz: could not parse LLM reply", slog.Any("error", err),
			slog.String("reply", engine.TruncateRunes(raw, 300, "...")))
		return nil, err
	}
	if len(quiz) != count {
		slog.Warn("quiz: question count differs from request",
			slog.Int("requested", count), slog.Int("got", len(quiz)))
	}
	return quiz, nil
}

// ParseQuiz extracts the JSON array from an LLM reply and validates its shape.
func ParseQuiz(raw string) (engine.Quiz, error) {
	questions, err := engine.DecodeJSONArray[engine.QuizQuestion](raw)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", engine.ErrMalformedResponse)
	}
	for i := range questions {
		if err := normalizeQuestion(&questions[i]); err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", engine.ErrMalformedResponse, i+1, err)
		}
	}
	return engine.Quiz(questions), nil
}

func normalizeQuestion(q *engine.QuizQuestion) error {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return errors.New("missing question text")
	}
	if len(q.Options) != optionsPerQuestion {
		return fmt.Errorf("has %d options, want %d", len(q.Options), optionsPerQuestion)
	}
	label, ok := answerLabel(q.CorrectAnswer, q.Options)
	if !ok {
		return fmt.Errorf("correct_answer %q is not one of A-D", q.CorrectAnswer)
	}
	q.CorrectAnswer = label
	q.Explanation = strings.TrimSpace(q.Explanation)
	return nil
}

// answerLabel normalizes the LLM's correct_answer to "A".."D". The exact
// text of an option (case-insensitive) wins; otherwise a bare letter or a
// letter followed by punctuation ("B)", "c. Paris") is accepted.
func answerLabel(answer string, options []string) (string, bool) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return "", false
	}
	for i, opt := range options {
		if i < len(engine.AnswerLabels) && strings.EqualFold(strings.TrimSpace(opt), a) {
			return engine.AnswerLabels[i], true
		}
	}
	first := unicode.ToUpper(rune(a[0]))
	if first >= 'A' && first <= 'D' && (len(a) == 1 || !unicode.IsLetter(rune(a[1]))) {
		return string(first), true
	}
	return "", false
}
