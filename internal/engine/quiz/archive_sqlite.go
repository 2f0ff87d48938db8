package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteArchive stores quizzes in a local SQLite file.
type SQLiteArchive struct {
	db *sql.DB
}

// OpenSQLiteArchive opens (or creates) the archive database at path.
func OpenSQLiteArchive(path string) (*SQLiteArchive, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("archive: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS quizzes (
		id             TEXT PRIMARY KEY,
		video_id       TEXT NOT NULL,
		video_title    TEXT NOT NULL,
		content_source TEXT NOT NULL,
		quiz           TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: init schema: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

// Save inserts one quiz.
func (a *SQLiteArchive) Save(ctx context.Context, q ArchivedQuiz) error {
	data, err := json.Marshal(q.Quiz)
	if err != nil {
		return fmt.Errorf("archive: encode quiz: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, video_id, video_title, content_source, quiz, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID, q.VideoID, q.VideoTitle, string(q.ContentSource), string(data),
		q.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("archive: insert: %w", err)
	}
	return nil
}

// Recent lists the newest quizzes first.
func (a *SQLiteArchive) Recent(ctx context.Context, limit int) ([]ArchivedQuiz, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, video_id, video_title, content_source, quiz, created_at
		 FROM quizzes ORDER BY created_at DESC LIMIT ?`, clampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []ArchivedQuiz{}
	for rows.Next() {
		var (
			q               ArchivedQuiz
			source, quizRaw string
			createdAt       string
		)
		if err := rows.Scan(&q.ID, &q.VideoID, &q.VideoTitle, &source, &quizRaw, &createdAt); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		q.ContentSource = sourceOf(source)
		if err := json.Unmarshal([]byte(quizRaw), &q.Quiz); err != nil {
			return nil, fmt.Errorf("archive: decode quiz %s: %w", q.ID, err)
		}
		q.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, q)
	}
	return out, rows.Err()
}

// Close closes the database.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
