package quiz

import (
	"context"
	"errors"
	"sync"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/sources"
)

type fakeMeta struct {
	info  engine.VideoInfo
	err   error
	calls int
}

func (f *fakeMeta) VideoInfo(_ context.Context, videoID string) (engine.VideoInfo, error) {
	f.calls++
	if f.err != nil {
		return engine.VideoInfo{}, f.err
	}
	info := f.info
	if info.ID == "" {
		info.ID = videoID
	}
	return info, nil
}

type fakeTranscripts struct {
	tracks    []sources.TranscriptTrack
	listErr   error
	text      string
	fetchErr  error
	listCalls int
	fetched   []sources.TranscriptTrack
	langs     []string
}

func (f *fakeTranscripts) ListTranscripts(_ context.Context, _ string) ([]sources.TranscriptTrack, error) {
	f.listCalls++
	return f.tracks, f.listErr
}

func (f *fakeTranscripts) FetchTranscript(_ context.Context, track sources.TranscriptTrack, translateTo string) (string, error) {
	f.fetched = append(f.fetched, track)
	f.langs = append(f.langs, translateTo)
	return f.text, f.fetchErr
}

type fakeCaptions struct {
	tracks      []sources.CaptionTrack
	listErr     error
	srt         string
	downloadErr error
	listCalls   int
	downloaded  []string
}

func (f *fakeCaptions) ListCaptions(_ context.Context, _ string) ([]sources.CaptionTrack, error) {
	f.listCalls++
	return f.tracks, f.listErr
}

func (f *fakeCaptions) DownloadCaption(_ context.Context, trackID string) (string, error) {
	f.downloaded = append(f.downloaded, trackID)
	return f.srt, f.downloadErr
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type memArchive struct {
	mu      sync.Mutex
	saved   []ArchivedQuiz
	saveErr error
}

func (m *memArchive) Save(_ context.Context, q ArchivedQuiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, q)
	return nil
}

func (m *memArchive) Recent(_ context.Context, limit int) ([]ArchivedQuiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ArchivedQuiz, 0, len(m.saved))
	for i := len(m.saved) - 1; i >= 0 && len(out) < clampHistoryLimit(limit); i-- {
		out = append(out, m.saved[i])
	}
	return out, nil
}

func (m *memArchive) Close() error { return nil }

var errBoom = errors.New("boom")

const validQuizJSON = `[
  {"question": "What is shown first?", "options": ["A cat", "A dog", "A bird", "A fish"], "correct_answer": "B", "explanation": "The dog appears at 0:10."},
  {"question": "Who narrates?", "options": ["Alice", "Bob", "Carol", "Dan"], "correct_answer": "a", "explanation": "Alice introduces herself."}
]`
