package sources

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// videoIDRE is the character set YouTube uses for video identifiers.
var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtractVideoID pulls the video ID out of a youtu.be short link or a
// youtube.com/watch URL. The URL is classified by host and path, so query
// values such as feature=youtu.be do not matter. Every other shape is
// engine.ErrInvalidURL.
func ExtractVideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty URL", engine.ErrInvalidURL)
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", engine.ErrInvalidURL, err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	switch {
	case host == "youtu.be":
		return checkVideoID(u.Path[strings.LastIndexByte(u.Path, '/')+1:])

	case isYouTubeHost(host) && strings.TrimSuffix(u.Path, "/") == "/watch":
		id := u.Query().Get("v")
		if id == "" {
			return "", fmt.Errorf("%w: missing video ID parameter", engine.ErrInvalidURL)
		}
		return checkVideoID(id)
	}
	return "", fmt.Errorf("%w: please use a standard YouTube URL", engine.ErrInvalidURL)
}

func isYouTubeHost(host string) bool {
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com")
}

func checkVideoID(id string) (string, error) {
	if !videoIDRE.MatchString(id) {
		return "", fmt.Errorf("%w: malformed video ID %q", engine.ErrInvalidURL, id)
	}
	return id, nil
}
