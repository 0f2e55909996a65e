package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.With(httputil.RecoverMiddleware).Get("/health", h.Health)
	r.With(httputil.RecoverMiddleware).Get("/", h.Index)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// transcription is expensive, keep one client from hogging the box
		pr.With(httprate.LimitByIP(30, time.Minute)).
			Post("/transcribe", h.Transcribe)

		pr.Get("/transcriptions", h.ListTranscriptions)
	})

	r.With(httputil.RecoverMiddleware).Get("/download/{name}", h.Download)
}
