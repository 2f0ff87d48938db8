package engine

import (
	"testing"
	"unicode/utf8"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"it&#39;s", "it's"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := DecodeEntities(tt.in); got != tt.want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	if got := CleanHTML("  <font color=\"#fff\">hello</font> "); got != "hello" {
		t.Errorf("CleanHTML() = %q, want %q", got, "hello")
	}
}

func TestTruncateRunesMultiByte(t *testing.T) {
	got := TruncateRunes("привет мир", 4, "")
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 4 {
		t.Errorf("TruncateRunes() = %q, want 4 whole runes", got)
	}
	if got := TruncateRunes("short", 10, ""); got != "short" {
		t.Errorf("TruncateRunes() = %q, want unchanged", got)
	}
}
