// go_quiz: YouTube video to multiple-choice quiz service.
//
// Serves a JSON HTTP API (POST /generate-quiz) and an MCP server exposing
// generate_quiz, video_info and quiz_history.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/quiz"
	"github.com/anatolykoptev/go_quiz/internal/engine/sources"
	"github.com/anatolykoptev/go_quiz/internal/quizserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg := loadConfig()
	httpPort := env.Str("PORT", "5000")
	mcpPort := env.Str("MCP_PORT", "8893")

	if cfg.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY is not set; metadata lookups will fail")
	}
	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY is not set; quiz generation will fail")
	}

	archive, err := quiz.OpenArchive(context.Background(), cfg.DatabaseURL, cfg.QuizDBPath)
	if err != nil {
		slog.Warn("quiz archive init failed, history disabled", slog.Any("error", err))
	} else if archive != nil {
		defer archive.Close()
		slog.Info("quiz archive initialized")
	}

	svc := newService(cfg, archive)

	slog.Info("starting go_quiz",
		slog.String("http_port", httpPort),
		slog.String("mcp_port", mcpPort),
	)

	go serveHTTP(httpPort, quizserver.NewHandler(svc))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_quiz",
		Version: version,
	}, nil)
	quizserver.RegisterTools(server, svc)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_quiz",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func loadConfig() engine.Config {
	c := engine.Config{
		YouTubeAPIKey:     env.Str("YOUTUBE_API_KEY", ""),
		YouTubeOAuthToken: env.Str("YOUTUBE_OAUTH_TOKEN", ""),
		LLMAPIKey:         env.Str("LLM_API_KEY", env.Str("GEMINI_API_KEY", "")),
		LLMAPIBase:        env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:          env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:    env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:      env.Int("LLM_MAX_TOKENS", 8192),
		LLMTimeout:        env.Duration("LLM_TIMEOUT", 90*time.Second),
		FetchTimeout:      env.Duration("FETCH_TIMEOUT", 15*time.Second),
		MaxContentChars:   env.Int("MAX_CONTENT_CHARS", 30000),
		DefaultQuestions:  env.Int("DEFAULT_QUESTIONS", 5),
		MaxQuestions:      env.Int("MAX_QUESTIONS", 20),
		DatabaseURL:       env.Str("DATABASE_URL", ""),
		QuizDBPath:        env.Str("QUIZ_DB_PATH", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	c = c.WithDefaults()
	c.HTTPClient.Timeout = c.FetchTimeout
	return c
}

func newService(cfg engine.Config, archive quiz.Archive) *quiz.Service {
	transcripts := sources.NewTranscriptClient(cfg.HTTPClient)
	dataAPI := sources.NewDataAPI(cfg.YouTubeAPIKey, cfg.YouTubeOAuthToken, cfg.HTTPClient)
	resolver := quiz.NewResolver(dataAPI, transcripts, dataAPI, cfg.FetchTimeout)
	synth := quiz.NewSynthesizer(engine.NewLLM(cfg), cfg.MaxContentChars)
	return quiz.NewService(resolver, synth, archive, quiz.Options{
		DefaultQuestions: cfg.DefaultQuestions,
		MaxQuestions:     cfg.MaxQuestions,
	})
}

func serveHTTP(port string, h http.Handler) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      300 * time.Second,
	}
	slog.Info("http api listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http api failed", slog.Any("error", err))
	}
}
