package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgArchiveSchema = `CREATE TABLE IF NOT EXISTS quizzes (
	id             UUID PRIMARY KEY,
	video_id       TEXT NOT NULL,
	video_title    TEXT NOT NULL,
	content_source TEXT NOT NULL,
	quiz           JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS quizzes_created_at_idx ON quizzes (created_at DESC)`

// PGArchive stores quizzes in PostgreSQL.
type PGArchive struct {
	pool *pgxpool.Pool
}

// OpenPGArchive creates a pgx pool and ensures the schema exists.
func OpenPGArchive(ctx context.Context, databaseURL string) (*PGArchive, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgArchiveSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("archive: migrate: %w", err)
	}
	return &PGArchive{pool: pool}, nil
}

// Save inserts one quiz.
func (a *PGArchive) Save(ctx context.Context, q ArchivedQuiz) error {
	data, err := json.Marshal(q.Quiz)
	if err != nil {
		return fmt.Errorf("archive: encode quiz: %w", err)
	}
	_, err = a.pool.Exec(ctx,
		`INSERT INTO quizzes (id, video_id, video_title, content_source, quiz, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.VideoID, q.VideoTitle, string(q.ContentSource), data, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("archive: insert: %w", err)
	}
	return nil
}

// Recent lists the newest quizzes first.
func (a *PGArchive) Recent(ctx context.Context, limit int) ([]ArchivedQuiz, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id::text, video_id, video_title, content_source, quiz, created_at
		 FROM quizzes ORDER BY created_at DESC LIMIT $1`, clampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []ArchivedQuiz{}
	for rows.Next() {
		var (
			q       ArchivedQuiz
			source  string
			quizRaw []byte
		)
		if err := rows.Scan(&q.ID, &q.VideoID, &q.VideoTitle, &source, &quizRaw, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		q.ContentSource = sourceOf(source)
		if err := json.Unmarshal(quizRaw, &q.Quiz); err != nil {
			return nil, fmt.Errorf("archive: decode quiz %s: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Close releases the pool.
func (a *PGArchive) Close() error {
	a.pool.Close()
	return nil
}

func sourceOf(s string) engine.Source {
	return engine.Source(s)
}
