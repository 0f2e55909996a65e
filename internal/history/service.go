package history

import (
	"context"
	"log"
)

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Record stores a finished transcription. History is an audit trail, so a
// failed insert only logs.
func (s *Service) Record(ctx context.Context, e Entry) {
	if _, err := s.repo.Create(ctx, e); err != nil {
		log.Printf("[history] insert failed: %v", err)
	}
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}
