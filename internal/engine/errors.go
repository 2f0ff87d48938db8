package engine

import "errors"

// Failure taxonomy for quiz generation. Callers match with errors.Is;
// producers wrap with fmt.Errorf("%w: ...") to attach detail.
var (
	ErrInvalidURL        = errors.New("invalid YouTube URL")
	ErrVideoNotFound     = errors.New("video not found")
	ErrMetadataAPI       = errors.New("YouTube API error")
	ErrNoTranscript      = errors.New("no transcript available")
	ErrNoCaptions        = errors.New("no captions available")
	ErrCaptionsForbidden = errors.New("unable to access captions due to permission restrictions")
	ErrCaptionsAPI       = errors.New("YouTube captions API error")
	ErrMalformedResponse = errors.New("invalid quiz format from LLM")
	ErrSynthesis         = errors.New("quiz generation failed")
)
