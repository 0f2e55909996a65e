package doc

import (
	"context"

	"github.com/Vovarama1992/nova_transcribe/internal/metrics"
)

type Service struct {
	writer Writer
}

func NewService(writer Writer) *Service {
	return &Service{writer: writer}
}

func (s *Service) Write(ctx context.Context, t Transcript) ([]byte, error) {
	data, err := s.writer.Write(ctx, t)
	if err != nil {
		return nil, err
	}
	metrics.Default.RecordDocumentWritten()
	return data, nil
}
