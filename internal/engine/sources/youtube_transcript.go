package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// Transcript provider errors.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNotTranslatable     = errors.New("transcript track cannot be translated")
)

// TranscriptTrack is one transcript track advertised by the watch page.
type TranscriptTrack struct {
	LanguageCode string
	Generated    bool // auto-generated speech recognition track
	Translatable bool
	baseURL      string
}

// TranscriptClient lists and fetches transcript tracks by scraping the
// watch page's ytInitialPlayerResponse. Works without an API key.
type TranscriptClient struct {
	httpClient *http.Client
	watchURL   string
}

// NewTranscriptClient creates a transcript client using hc for all requests.
func NewTranscriptClient(hc *http.Client) *TranscriptClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &TranscriptClient{httpClient: hc, watchURL: ytWatchURL}
}

// ListTranscripts returns the fetchable transcript tracks for a video.
// Tracks that need a PoToken are skipped: they only work in a browser.
func (c *TranscriptClient) ListTranscripts(ctx context.Context, videoID string) ([]TranscriptTrack, error) {
	body, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr playerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Status != "OK" && pr.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrTranscriptsDisabled, pr.PlayabilityStatus.Reason)
		}
		return nil, ErrTranscriptsDisabled
	}

	raw := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]TranscriptTrack, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" || needsPoToken(t.BaseURL) {
			continue
		}
		tracks = append(tracks, TranscriptTrack{
			LanguageCode: t.LanguageCode,
			Generated:    t.Kind == "asr",
			Translatable: t.IsTranslatable,
			baseURL:      t.BaseURL,
		})
	}
	if len(tracks) == 0 && len(raw) > 0 {
		slog.Debug("youtube: all transcript tracks require PoToken", slog.String("id", videoID))
	}
	return tracks, nil
}

// FetchTranscript downloads a track as plain text. A non-empty translateTo
// asks YouTube to machine-translate the track into that language.
func (c *TranscriptClient) FetchTranscript(ctx context.Context, track TranscriptTrack, translateTo string) (string, error) {
	target := track.baseURL
	if target == "" {
		return "", errors.New("transcript track has no URL")
	}
	if translateTo != "" {
		if !track.Translatable {
			return "", fmt.Errorf("%w: %s", ErrNotTranslatable, track.LanguageCode)
		}
		target += "&tlang=" + url.QueryEscape(translateTo)
	}
	return c.fetchTimedText(ctx, target)
}

func (c *TranscriptClient) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := c.watchURL + "?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	// Skip the EU consent interstitial.
	req.Header.Set("Cookie", "CONSENT=YES+1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, ytWatchPageMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	return body, nil
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (c *TranscriptClient) fetchTimedText(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, ytTimedTextMaxBytes))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

// parseTimedText flattens timedtext XML into space-joined plain text.
func parseTimedText(body []byte) (string, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var parts []string
	for _, line := range tt.Lines {
		parts = appendCaptionText(parts, line.Text)
	}
	for _, p := range tt.Body.Paragraphs {
		if len(p.Segments) > 0 {
			parts = appendCaptionText(parts, strings.Join(p.Segments, ""))
			continue
		}
		parts = appendCaptionText(parts, p.Text)
	}
	return strings.Join(parts, " "), nil
}

// appendCaptionText decodes the second layer of entity escaping YouTube
// applies, strips inline markup, and collapses whitespace.
func appendCaptionText(parts []string, s string) []string {
	s = engine.CleanHTML(engine.DecodeEntities(s))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return parts
	}
	return append(parts, s)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
