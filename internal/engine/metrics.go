package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	QuizRequests         atomic.Int64
	QuizErrors           atomic.Int64
	MetadataRequests     atomic.Int64
	TranscriptAttempts   atomic.Int64
	TranscriptHits       atomic.Int64
	CaptionAttempts      atomic.Int64
	CaptionHits          atomic.Int64
	CaptionForbidden     atomic.Int64
	DescriptionFallbacks atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	MalformedResponses   atomic.Int64
	ArchiveWrites        atomic.Int64
	ArchiveErrors        atomic.Int64
}

var metricKeys = []string{
	"quiz_requests", "quiz_errors",
	"metadata_requests",
	"transcript_attempts", "transcript_hits",
	"caption_attempts", "caption_hits", "caption_forbidden",
	"description_fallbacks",
	"llm_calls", "llm_errors", "malformed_responses",
	"archive_writes", "archive_errors",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"quiz_requests":         metrics.QuizRequests.Load(),
		"quiz_errors":           metrics.QuizErrors.Load(),
		"metadata_requests":     metrics.MetadataRequests.Load(),
		"transcript_attempts":   metrics.TranscriptAttempts.Load(),
		"transcript_hits":       metrics.TranscriptHits.Load(),
		"caption_attempts":      metrics.CaptionAttempts.Load(),
		"caption_hits":          metrics.CaptionHits.Load(),
		"caption_forbidden":     metrics.CaptionForbidden.Load(),
		"description_fallbacks": metrics.DescriptionFallbacks.Load(),
		"llm_calls":             metrics.LLMCalls.Load(),
		"llm_errors":            metrics.LLMErrors.Load(),
		"malformed_responses":   metrics.MalformedResponses.Load(),
		"archive_writes":        metrics.ArchiveWrites.Load(),
		"archive_errors":        metrics.ArchiveErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the quiz and sources sub-packages.
func IncrQuizRequests()         { metrics.QuizRequests.Add(1) }
func IncrQuizErrors()           { metrics.QuizErrors.Add(1) }
func IncrMetadataRequests()     { metrics.MetadataRequests.Add(1) }
func IncrTranscriptAttempts()   { metrics.TranscriptAttempts.Add(1) }
func IncrTranscriptHits()       { metrics.TranscriptHits.Add(1) }
func IncrCaptionAttempts()      { metrics.CaptionAttempts.Add(1) }
func IncrCaptionHits()          { metrics.CaptionHits.Add(1) }
func IncrCaptionForbidden()     { metrics.CaptionForbidden.Add(1) }
func IncrDescriptionFallbacks() { metrics.DescriptionFallbacks.Add(1) }
func IncrMalformedResponses()   { metrics.MalformedResponses.Add(1) }
func IncrArchiveWrites()        { metrics.ArchiveWrites.Add(1) }
func IncrArchiveErrors()        { metrics.ArchiveErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 20*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
