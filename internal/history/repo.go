package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Expected schema:
//
//	CREATE TABLE transcriptions (
//		id               BIGSERIAL PRIMARY KEY,
//		filename         TEXT NOT NULL,
//		model            TEXT NOT NULL,
//		backend          TEXT NOT NULL,
//		language         TEXT,
//		duration_seconds DOUBLE PRECISION,
//		docx_file        TEXT NOT NULL,
//		created_at       TIMESTAMPTZ NOT NULL
//	);
type pgRepo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &pgRepo{db: db}
}

func (r *pgRepo) Create(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transcriptions (filename, model, backend, language, duration_seconds, docx_file, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, e.Filename, e.Model, e.Backend, e.Language, e.DurationSec, e.DocxFile, time.Now()).Scan(&id)
	return id, err
}

func (r *pgRepo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, model, backend, language, duration_seconds, docx_file, created_at
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.Filename,
			&e.Model,
			&e.Backend,
			&e.Language,
			&e.DurationSec,
			&e.DocxFile,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
