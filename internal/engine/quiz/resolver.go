package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/sources"
)

// MetadataSource returns basic video metadata.
type MetadataSource interface {
	VideoInfo(ctx context.Context, videoID string) (engine.VideoInfo, error)
}

// TranscriptSource lists transcript tracks and fetches (optionally translated) text.
type TranscriptSource interface {
	ListTranscripts(ctx context.Context, videoID string) ([]sources.TranscriptTrack, error)
	FetchTranscript(ctx context.Context, track sources.TranscriptTrack, translateTo string) (string, error)
}

// CaptionSource lists caption tracks and downloads one as SRT.
type CaptionSource interface {
	ListCaptions(ctx context.Context, videoID string) ([]sources.CaptionTrack, error)
	DownloadCaption(ctx context.Context, trackID string) (string, error)
}

// Language preferences for track selection.
var (
	transcriptVariants = []string{"en-US", "en-GB"}
	captionLanguages   = map[string]bool{"en": true, "en-US": true, "en-GB": true}
)

const translateTarget = "en"

// Attempt records a strategy that failed before the winning one.
type Attempt struct {
	Source engine.Source
	Err    error
}

// Resolved is the resolver output: the metadata plus the best available text.
type Resolved struct {
	Video   engine.VideoInfo
	Content engine.Content
	Failed  []Attempt
}

// FallbackReasons returns one human-readable line per failed strategy.
func (r *Resolved) FallbackReasons() []string {
	if len(r.Failed) == 0 {
		return nil
	}
	out := make([]string, len(r.Failed))
	for i, a := range r.Failed {
		out[i] = fmt.Sprintf("%s: %v", a.Source, a.Err)
	}
	return out
}

// strategy produces text for a video or fails with a typed error.
type strategy struct {
	source engine.Source
	fetch  func(ctx context.Context, video engine.VideoInfo) (string, error)
}

// Resolver obtains quiz content by trying transcript, captions and the
// description in that order, stopping at the first success.
type Resolver struct {
	meta        MetadataSource
	transcripts TranscriptSource
	captions    CaptionSource
	timeout     time.Duration
}

// NewResolver wires the three collaborators. timeout bounds each outbound
// step; zero disables the per-step deadline.
func NewResolver(meta MetadataSource, transcripts TranscriptSource, captions CaptionSource, timeout time.Duration) *Resolver {
	return &Resolver{meta: meta, transcripts: transcripts, captions: captions, timeout: timeout}
}

// Resolve fetches metadata (fatal on failure) and then walks the fallback chain.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*Resolved, error) {
	video, err := r.videoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	out := &Resolved{Video: video}
	for _, s := range r.strategies() {
		text, err := r.run(ctx, s, video)
		if err == nil {
			out.Content = engine.Content{Text: text, Source: s.source}
			slog.Info("quiz: content resolved",
				slog.String("id", videoID),
				slog.String("source", string(s.source)),
				slog.Int("chars", len(text)))
			return out, nil
		}
		slog.Warn("quiz: strategy failed, falling through",
			slog.String("id", videoID),
			slog.String("source", string(s.source)),
			slog.Any("error", err))
		out.Failed = append(out.Failed, Attempt{Source: s.source, Err: err})
	}
	// The description strategy never fails once metadata is known.
	return nil, fmt.Errorf("no content for video %s", videoID)
}

func (r *Resolver) strategies() []strategy {
	return []strategy{
		{source: engine.SourceTranscript, fetch: r.fromTranscript},
		{source: engine.SourceCaptions, fetch: r.fromCaptions},
		{source: engine.SourceDescription, fetch: fromDescription},
	}
}

func (r *Resolver) run(ctx context.Context, s strategy, video engine.VideoInfo) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return s.fetch(ctx, video)
}

func (r *Resolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Resolver) videoInfo(ctx context.Context, videoID string) (engine.VideoInfo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	video, err := r.meta.VideoInfo(ctx, videoID)
	if err != nil {
		if errors.Is(err, engine.ErrVideoNotFound) || errors.Is(err, engine.ErrMetadataAPI) {
			return engine.VideoInfo{}, err
		}
		return engine.VideoInfo{}, fmt.Errorf("%w: %w", engine.ErrMetadataAPI, err)
	}
	if video.ID == "" {
		video.ID = videoID
	}
	return video, nil
}

// fromTranscript: exact en, then en-US/en-GB, then the first track translated to English.
func (r *Resolver) fromTranscript(ctx context.Context, video engine.VideoInfo) (string, error) {
	engine.IncrTranscriptAttempts()
	tracks, err := r.transcripts.ListTranscripts(ctx, video.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", engine.ErrNoTranscript, err)
	}
	track, translate, ok := selectTranscript(tracks)
	if !ok {
		return "", fmt.Errorf("%w: video has no transcript tracks", engine.ErrNoTranscript)
	}

	lang := ""
	if translate {
		lang = translateTarget
	}
	text, err := r.transcripts.FetchTranscript(ctx, track, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %w", engine.ErrNoTranscript, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty transcript", engine.ErrNoTranscript)
	}
	engine.IncrTranscriptHits()
	return text, nil
}

// selectTranscript returns the track to fetch and whether it must be translated.
// Within a language, manually created tracks win over auto-generated ones.
func selectTranscript(tracks []sources.TranscriptTrack) (sources.TranscriptTrack, bool, bool) {
	if len(tracks) == 0 {
		return sources.TranscriptTrack{}, false, false
	}
	if t, ok := findTranscript(tracks, []string{translateTarget}); ok {
		return t, false, true
	}
	if t, ok := findTranscript(tracks, transcriptVariants); ok {
		return t, false, true
	}
	return tracks[0], true, true
}

func findTranscript(tracks []sources.TranscriptTrack, langs []string) (sources.TranscriptTrack, bool) {
	for _, lang := range langs {
		var generated *sources.TranscriptTrack
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if !tracks[i].Generated {
				return tracks[i], true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return sources.TranscriptTrack{}, false
}

// fromCaptions: first English-ish track in list order, else the first track.
func (r *Resolver) fromCaptions(ctx context.Context, video engine.VideoInfo) (string, error) {
	engine.IncrCaptionAttempts()
	tracks, err := r.captions.ListCaptions(ctx, video.ID)
	if err != nil {
		return "", captionsErr(err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("%w: no caption tracks found", engine.ErrNoCaptions)
	}

	track := selectCaption(tracks)
	raw, err := r.captions.DownloadCaption(ctx, track.ID)
	if err != nil {
		return "", captionsErr(err)
	}
	text := sources.NormalizeSRT(raw)
	if text == "" {
		return "", fmt.Errorf("%w: caption track %s is empty", engine.ErrNoCaptions, track.ID)
	}
	engine.IncrCaptionHits()
	return text, nil
}

// captionsErr keeps typed caption failures and files anything else under ErrCaptionsAPI.
func captionsErr(err error) error {
	if errors.Is(err, engine.ErrCaptionsForbidden) || errors.Is(err, engine.ErrCaptionsAPI) {
		return err
	}
	return fmt.Errorf("%w: %w", engine.ErrCaptionsAPI, err)
}

func selectCaption(tracks []sources.CaptionTrack) sources.CaptionTrack {
	for _, t := range tracks {
		if captionLanguages[t.Language] {
			return t
		}
	}
	return tracks[0]
}

func fromDescription(_ context.Context, video engine.VideoInfo) (string, error) {
	engine.IncrDescriptionFallbacks()
	return video.Description, nil
}
