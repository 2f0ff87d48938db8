package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// LLM is the generative-text collaborator backed by an OpenAI-compatible endpoint.
type LLM struct {
	client *llm.Client
}

// NewLLM builds an LLM client from config. No fallback keys are configured:
// a failed completion is final for the request.
func NewLLM(c Config) *LLM {
	c = c.WithDefaults()
	return &LLM{
		client: llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: c.LLMTimeout}),
		),
	}
}

// Generate sends a single prompt and returns the raw reply text.
func (l *LLM) Generate(ctx context.Context, prompt string) (string, error) {
	metrics.LLMCalls.Add(1)
	resp, err := l.client.Complete(ctx, "", prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// ExtractJSONArray returns the slice of raw between the first '[' and the
// last ']', inclusive. LLMs like to wrap JSON in prose or code fences; this
// is the only place that tolerance lives.
func ExtractJSONArray(raw string) ([]byte, error) {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start < 0 || end < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in reply", ErrMalformedResponse)
	}
	return []byte(raw[start : end+1]), nil
}

// DecodeJSONArray extracts the bracketed slice of raw and unmarshals it into []T.
func DecodeJSONArray[T any](raw string) ([]T, error) {
	data, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out, nil
}
