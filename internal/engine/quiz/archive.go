package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// ErrArchiveDisabled is returned by history lookups when no archive is configured.
var ErrArchiveDisabled = errors.New("quiz history is disabled (set DATABASE_URL or QUIZ_DB_PATH)")

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ArchivedQuiz is a stored, completed quiz.
type ArchivedQuiz struct {
	ID            string        `json:"id"`
	VideoID       string        `json:"video_id"`
	VideoTitle    string        `json:"video_title"`
	ContentSource engine.Source `json:"content_source"`
	Quiz          engine.Quiz   `json:"quiz"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Archive persists completed quizzes. Only finished results are written;
// generation itself never reads from it.
type Archive interface {
	Save(ctx context.Context, q ArchivedQuiz) error
	Recent(ctx context.Context, limit int) ([]ArchivedQuiz, error)
	Close() error
}

// OpenArchive picks a backend: Postgres when databaseURL is set, SQLite when
// sqlitePath is set, none otherwise (nil, nil).
func OpenArchive(ctx context.Context, databaseURL, sqlitePath string) (Archive, error) {
	switch {
	case databaseURL != "":
		a, err := OpenPGArchive(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return a, nil
	case sqlitePath != "":
		a, err := OpenSQLiteArchive(sqlitePath)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, nil
}

func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
