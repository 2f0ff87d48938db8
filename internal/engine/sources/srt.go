package sources

import (
	"strings"
	"unicode"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// srtTimeSeparator appears only on SRT timestamp lines ("00:00:01,000 --> 00:00:02,500").
const srtTimeSeparator = "-->"

// NormalizeSRT flattens an SRT caption track into a single line of text.
// Sequence numbers, timestamp lines and blank separators are dropped; every
// other line is entity-decoded and kept in order, joined by single spaces.
func NormalizeSRT(srt string) string {
	lines := strings.Split(srt, "\n")
	out := make([]string, 0, len(lines)/2)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) || strings.Contains(line, srtTimeSeparator) {
			continue
		}
		out = append(out, engine.DecodeEntities(line))
	}
	return strings.Join(out, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
