package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/nova_transcribe/internal/metrics"
)

type Notificator interface {
	Notify(ctx context.Context, err error, details string) error
}

type Service struct {
	backend     Transcriber
	backendName string
	notify      Notificator
}

func NewService(backend Transcriber, backendName string, notify Notificator) *Service {
	return &Service{
		backend:     backend,
		backendName: backendName,
		notify:      notify,
	}
}

func (s *Service) Backend() string {
	return s.backendName
}

// Transcribe validates the request, runs the configured backend and fills in
// the audio duration from ffprobe when the backend does not report one.
func (s *Service) Transcribe(ctx context.Context, req Request) (Result, error) {
	model, err := ValidateModel(req.Model)
	if err != nil {
		return Result{}, err
	}
	req.Model = model

	if req.BeamSize <= 0 {
		req.BeamSize = 5
	}
	if req.Task == "" {
		req.Task = "transcribe"
	}
	if req.Task != "transcribe" && req.Task != "translate" {
		return Result{}, fmt.Errorf("unknown task %q", req.Task)
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		return Result{}, fmt.Errorf("temperature %v out of range [0, 1]", req.Temperature)
	}

	started := time.Now()
	res, err := s.backend.Transcribe(ctx, req)
	metrics.Default.RecordTranscription(s.backendName, req.Model, err, time.Since(started).Seconds())
	if err != nil {
		if s.notify != nil {
			_ = s.notify.Notify(ctx, err, "model="+req.Model+" backend="+s.backendName)
		}
		return Result{}, err
	}

	if res.DurationSec == 0 {
		if dur, probeErr := AudioDuration(req.FilePath); probeErr == nil {
			res.DurationSec = dur
		}
	}
	metrics.Default.RecordAudioSeconds(res.DurationSec)

	return res, nil
}
