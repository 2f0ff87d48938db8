package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/sources"
	"github.com/anatolykoptev/go_quiz/internal/toolutil"
	"github.com/google/uuid"
)

// Result is a finished quiz together with where its content came from.
type Result struct {
	ID              string        `json:"id"`
	VideoID         string        `json:"video_id"`
	VideoTitle      string        `json:"video_title"`
	Quiz            engine.Quiz   `json:"quiz"`
	ContentSource   engine.Source `json:"content_source"`
	FallbackReasons []string      `json:"fallback_reasons,omitempty"`
}

// Options tunes question counts.
type Options struct {
	DefaultQuestions int
	MaxQuestions     int
}

// Service wires URL parsing, content resolution and synthesis into one call.
type Service struct {
	resolver *Resolver
	synth    *Synthesizer
	archive  Archive // nil = history disabled
	opts     Options
}

// NewService creates the orchestrator. archive may be nil.
func NewService(resolver *Resolver, synth *Synthesizer, archive Archive, opts Options) *Service {
	return &Service{resolver: resolver, synth: synth, archive: archive, opts: opts}
}

// Generate runs the whole pipeline for one URL. Any failure aborts the
// request; a partial quiz is never returned.
func (s *Service) Generate(ctx context.Context, rawURL string, numQuestions int) (*Result, error) {
	engine.IncrQuizRequests()
	res, err := s.generate(ctx, rawURL, numQuestions)
	if err != nil {
		engine.IncrQuizErrors()
		return nil, err
	}
	return res, nil
}

func (s *Service) generate(ctx context.Context, rawURL string, numQuestions int) (*Result, error) {
	videoID, err := sources.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	count := toolutil.NormQuestionCount(numQuestions, s.opts.DefaultQuestions, s.opts.MaxQuestions)

	var resolved *Resolved
	var quiz engine.Quiz
	err = engine.TrackOperation(ctx, "generate_quiz", func(ctx context.Context) error {
		var err error
		resolved, err = s.resolver.Resolve(ctx, videoID)
		if err != nil {
			return err
		}
		quiz, err = s.synth.Synthesize(ctx, resolved.Content.Text, resolved.Video.Title, count,
			resolved.Content.Source.Kind())
		return err
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:              uuid.NewString(),
		VideoID:         videoID,
		VideoTitle:      resolved.Video.Title,
		Quiz:            quiz,
		ContentSource:   resolved.Content.Source,
		FallbackReasons: resolved.FallbackReasons(),
	}
	s.record(ctx, res)
	return res, nil
}

// VideoInfo resolves a URL to its metadata without generating anything.
func (s *Service) VideoInfo(ctx context.Context, rawURL string) (engine.VideoInfo, error) {
	videoID, err := sources.ExtractVideoID(rawURL)
	if err != nil {
		return engine.VideoInfo{}, err
	}
	return s.resolver.videoInfo(ctx, videoID)
}

// History returns the most recent archived quizzes, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]ArchivedQuiz, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.Recent(ctx, limit)
}

// record archives a finished quiz. Archive failures never fail the request.
func (s *Service) record(ctx context.Context, res *Result) {
	if s.archive == nil {
		return
	}
	err := s.archive.Save(ctx, ArchivedQuiz{
		ID:            res.ID,
		VideoID:       res.VideoID,
		VideoTitle:    res.VideoTitle,
		ContentSource: res.ContentSource,
		Quiz:          res.Quiz,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		engine.IncrArchiveErrors()
		slog.Warn("quiz: archive save failed", slog.String("id", res.ID), slog.Any("error", err))
		return
	}
	engine.IncrArchiveWrites()
}

// String implements fmt.Stringer for log lines.
func (r *Result) String() string {
	return fmt.Sprintf("%s (%s, %d questions from %s)", r.VideoTitle, r.VideoID, len(r.Quiz), r.ContentSource)
}
