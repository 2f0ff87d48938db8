package sources

// Watch-page player response and timedtext XML, low-level types only.
// Higher-level transcript logic lives in youtube_transcript.go.

const (
	ytWatchURL = "https://www.youtube.com/watch"

	// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

	ytWatchPageMaxBytes = 6 * 1024 * 1024
	ytTimedTextMaxBytes = 2 * 1024 * 1024
)

type playerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []playerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type playerCaptionTrack struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool   `json:"isTranslatable"`
}

// --- Timedtext XML types ---

// ytTimedText covers both the legacy <transcript><text> format and srv3
// <timedtext><body><p><s> format; whichever is present gets populated.
type ytTimedText struct {
	Lines []ytLine `xml:"text"`
	Body  struct {
		Paragraphs []ytParagraph `xml:"p"`
	} `xml:"body"`
}

type ytLine struct {
	Text string `xml:",chardata"`
}

type ytParagraph struct {
	Text     string   `xml:",chardata"`
	Segments []string `xml:"s"`
}
