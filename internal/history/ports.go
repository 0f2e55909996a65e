package history

import (
	"context"
	"time"
)

// Entry is one finished transcription.
type Entry struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	Model       string    `json:"model"`
	Backend     string    `json:"backend"`
	Language    *string   `json:"language"`
	DurationSec *float64  `json:"duration_seconds"`
	DocxFile    string    `json:"docx_file"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repo interface {
	Create(ctx context.Context, e Entry) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
