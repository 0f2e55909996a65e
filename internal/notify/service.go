package notify

import "context"

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	return &Service{infra: infra}
}

func (s *Service) Notify(ctx context.Context, err error, details string) error {
	if s.infra == nil {
		return nil
	}
	return s.infra.Notify(ctx, err, details)
}
