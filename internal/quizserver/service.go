// Package quizserver exposes the quiz service over HTTP and as MCP tools.
package quizserver

import (
	"context"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/quiz"
)

// QuizService is the part of quiz.Service the transports use.
type QuizService interface {
	Generate(ctx context.Context, rawURL string, numQuestions int) (*quiz.Result, error)
	VideoInfo(ctx context.Context, rawURL string) (engine.VideoInfo, error)
	History(ctx context.Context, limit int) ([]quiz.ArchivedQuiz, error)
}

var _ QuizService = (*quiz.Service)(nil)
