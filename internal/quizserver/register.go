package quizserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/quiz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerateQuizInput is the generate_quiz tool input.
type GenerateQuizInput struct {
	URL          string `json:"youtube_url" jsonschema:"YouTube video URL (youtube.com/watch?v=... or youtu.be/...)"`
	NumQuestions int    `json:"num_questions,omitempty" jsonschema:"Number of questions (default 5, max 20)"`
}

// VideoInfoInput is the video_info tool input.
type VideoInfoInput struct {
	URL string `json:"youtube_url" jsonschema:"YouTube video URL"`
}

// QuizHistoryInput is the quiz_history tool input.
type QuizHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of quizzes to return (default 20, max 100)"`
}

// QuizHistoryOutput wraps archived quizzes; tool outputs must be objects.
type QuizHistoryOutput struct {
	Quizzes []quiz.ArchivedQuiz `json:"quizzes"`
}

// RegisterTools registers generate_quiz, video_info and quiz_history.
func RegisterTools(server *mcp.Server, svc QuizService) {
	registerGenerateQuiz(server, svc)
	registerVideoInfo(server, svc)
	registerQuizHistory(server, svc)
}

func registerGenerateQuiz(server *mcp.Server, svc QuizService) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a multiple-choice quiz from a YouTube video. Uses the spoken transcript when available, then the caption track, then the video description. Returns questions with 4 options (A-D), the correct answer letter and an explanation, plus which content source was used.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateQuizInput) (*mcp.CallToolResult, *quiz.Result, error) {
		if input.URL == "" {
			return nil, nil, errors.New("youtube_url is required")
		}
		res, err := svc.Generate(ctx, input.URL, input.NumQuestions)
		if err != nil {
			return nil, nil, err
		}
		return nil, res, nil
	})
}

func registerVideoInfo(server *mcp.Server, svc QuizService) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_info",
		Description: "Look up a YouTube video's title and description from its URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoInfoInput) (*mcp.CallToolResult, *engine.VideoInfo, error) {
		if input.URL == "" {
			return nil, nil, errors.New("youtube_url is required")
		}
		info, err := svc.VideoInfo(ctx, input.URL)
		if err != nil {
			return nil, nil, err
		}
		return nil, &info, nil
	})
}

func registerQuizHistory(server *mcp.Server, svc QuizService) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "quiz_history",
		Description: "List recently generated quizzes, newest first. Requires DATABASE_URL or QUIZ_DB_PATH.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input QuizHistoryInput) (*mcp.CallToolResult, *QuizHistoryOutput, error) {
		list, err := svc.History(ctx, input.Limit)
		if err != nil {
			return nil, nil, err
		}
		return nil, &QuizHistoryOutput{Quizzes: list}, nil
	})
}
