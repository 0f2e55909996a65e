// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nova_transcribe"

type Metrics struct {
	TranscriptionsTotal *prometheus.CounterVec
	TranscribeDuration  *prometheus.HistogramVec
	AudioSecondsTotal   prometheus.Counter
	DocumentsWritten    prometheus.Counter
	DownloadsTotal      *prometheus.CounterVec
}

var Default = New()

func New() *Metrics {
	return &Metrics{
		TranscriptionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Transcription requests by backend, model and outcome",
		}, []string{"backend", "model", "outcome"}),
		TranscribeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcribe_duration_seconds",
			Help:      "Wall-clock transcription latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"backend", "model"}),
		AudioSecondsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_seconds_total",
			Help:      "Total seconds of audio transcribed",
		}),
		DocumentsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_written_total",
			Help:      "Total number of documents generated",
		}),
		DownloadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Download requests by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) RecordTranscription(backend, model string, err error, seconds float64) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.TranscriptionsTotal.WithLabelValues(backend, model, outcome).Inc()
	m.TranscribeDuration.WithLabelValues(backend, model).Observe(seconds)
}

func (m *Metrics) RecordAudioSeconds(seconds float64) {
	if seconds > 0 {
		m.AudioSecondsTotal.Add(seconds)
	}
}

func (m *Metrics) RecordDocumentWritten() {
	m.DocumentsWritten.Inc()
}

func (m *Metrics) RecordDownload(found bool) {
	outcome := "success"
	if !found {
		outcome = "not_found"
	}
	m.DownloadsTotal.WithLabelValues(outcome).Inc()
}
