package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey     string
	YouTubeOAuthToken string // optional; captions.download needs OAuth for most videos
	LLMAPIKey         string
	LLMAPIBase        string
	LLMModel          string
	LLMTemperature    float64
	LLMMaxTokens      int
	LLMTimeout        time.Duration
	FetchTimeout      time.Duration // per outbound YouTube call
	MaxContentChars   int           // transcript/description runes sent to the LLM
	DefaultQuestions  int
	MaxQuestions      int
	DatabaseURL       string // Postgres archive; takes precedence over QuizDBPath
	QuizDBPath        string // SQLite archive
	HTTPClient        *http.Client
}

// WithDefaults fills zero-valued fields with working defaults.
func (c Config) WithDefaults() Config {
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if c.LLMModel == "" {
		c.LLMModel = "gemini-2.5-flash"
	}
	if c.LLMMaxTokens <= 0 {
		c.LLMMaxTokens = 8192
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = 90 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.MaxContentChars <= 0 {
		c.MaxContentChars = 30000
	}
	if c.DefaultQuestions <= 0 {
		c.DefaultQuestions = 5
	}
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = 20
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	return c
}
