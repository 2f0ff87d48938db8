package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// YouTube Data API v3: video metadata plus caption listing and download.

const (
	ytDataAPIBase       = "https://www.googleapis.com/youtube/v3"
	ytDataMaxBytes      = 1 * 1024 * 1024
	ytCaptionMaxBytes   = 4 * 1024 * 1024
	ytCaptionFormatSRT  = "srt"
	ytErrorSnippetRunes = 512
)

// forbiddenReasons are Data API error reasons that mean "you may not read this".
var forbiddenReasons = map[string]bool{
	"forbidden":               true,
	"insufficientPermissions": true,
}

// --- Data API types ---

type ytVideosResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

type ytCaptionsResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Language  string `json:"language"`
			Name      string `json:"name"`
			TrackKind string `json:"trackKind"`
		} `json:"snippet"`
	} `json:"items"`
}

type ytErrorResp struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

// CaptionTrack is one caption track listed by captions.list.
type CaptionTrack struct {
	ID        string `json:"id"`
	Language  string `json:"language"`
	Name      string `json:"name,omitempty"`
	TrackKind string `json:"track_kind,omitempty"` // standard, asr, forced
}

// APIError is a non-200 answer from the Data API.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Forbidden reports whether the API refused access for permission reasons.
func (e *APIError) Forbidden() bool {
	return forbiddenReasons[e.Reason]
}

// DataAPI is a minimal YouTube Data API v3 client.
type DataAPI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	oauthToken string
}

// NewDataAPI creates a Data API client. oauthToken may be empty; without it
// captions.download is refused for videos the caller does not own.
func NewDataAPI(apiKey, oauthToken string, hc *http.Client) *DataAPI {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &DataAPI{httpClient: hc, baseURL: ytDataAPIBase, apiKey: apiKey, oauthToken: oauthToken}
}

// VideoInfo fetches title and description. Returns engine.ErrVideoNotFound
// when the API knows no such video and engine.ErrMetadataAPI on any other failure.
func (a *DataAPI) VideoInfo(ctx context.Context, videoID string) (engine.VideoInfo, error) {
	engine.IncrMetadataRequests()
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)

	body, err := a.get(ctx, "/videos", params, ytDataMaxBytes)
	if err != nil {
		return engine.VideoInfo{}, fmt.Errorf("%w: %w", engine.ErrMetadataAPI, err)
	}

	var resp ytVideosResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return engine.VideoInfo{}, fmt.Errorf("%w: decode videos: %w", engine.ErrMetadataAPI, err)
	}
	if len(resp.Items) == 0 {
		return engine.VideoInfo{}, fmt.Errorf("%w: %s", engine.ErrVideoNotFound, videoID)
	}
	item := resp.Items[0]
	return engine.VideoInfo{
		ID:          videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
	}, nil
}

// ListCaptions lists caption tracks in API order.
func (a *DataAPI) ListCaptions(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)

	body, err := a.get(ctx, "/captions", params, ytDataMaxBytes)
	if err != nil {
		return nil, captionError(err)
	}

	var resp ytCaptionsResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode captions: %w", engine.ErrCaptionsAPI, err)
	}
	tracks := make([]CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		tracks = append(tracks, CaptionTrack{
			ID:        item.ID,
			Language:  item.Snippet.Language,
			Name:      item.Snippet.Name,
			TrackKind: item.Snippet.TrackKind,
		})
	}
	return tracks, nil
}

// DownloadCaption downloads a caption track as raw SRT text.
func (a *DataAPI) DownloadCaption(ctx context.Context, trackID string) (string, error) {
	params := url.Values{}
	params.Set("tfmt", ytCaptionFormatSRT)

	body, err := a.get(ctx, "/captions/"+url.PathEscape(trackID), params, ytCaptionMaxBytes)
	if err != nil {
		return "", captionError(err)
	}
	return string(body), nil
}

// captionError classifies a caption call failure: permission refusals are
// ErrCaptionsForbidden, everything else ErrCaptionsAPI.
func captionError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Forbidden() {
		engine.IncrCaptionForbidden()
		return fmt.Errorf("%w: %w", engine.ErrCaptionsForbidden, err)
	}
	return fmt.Errorf("%w: %w", engine.ErrCaptionsAPI, err)
}

// get performs a single GET against the Data API. Non-200 answers become *APIError.
func (a *DataAPI) get(ctx context.Context, path string, params url.Values, limit int64) ([]byte, error) {
	if a.apiKey != "" {
		params.Set("key", a.apiKey)
	}
	apiURL := a.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)
	req.Header.Set("Accept", "application/json")
	if a.oauthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.oauthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return nil, parseAPIError(resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var er ytErrorResp
	if json.Unmarshal(body, &er) == nil && er.Error.Code != 0 {
		apiErr.Message = er.Error.Message
		if len(er.Error.Errors) > 0 {
			apiErr.Reason = er.Error.Errors[0].Reason
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(engine.TruncateRunes(string(body), ytErrorSnippetRunes, ""))
	return apiErr
}
