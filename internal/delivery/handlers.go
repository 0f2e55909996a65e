package delivery

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/nova_transcribe/internal/doc"
	"github.com/Vovarama1992/nova_transcribe/internal/history"
	"github.com/Vovarama1992/nova_transcribe/internal/storage"
	"github.com/Vovarama1992/nova_transcribe/internal/transcribe"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type TranscribeService interface {
	Transcribe(ctx context.Context, req transcribe.Request) (transcribe.Result, error)
	Backend() string
}

type DocService interface {
	Write(ctx context.Context, t doc.Transcript) ([]byte, error)
}

type HistoryService interface {
	Record(ctx context.Context, e history.Entry)
	ListRecent(ctx context.Context, limit int) ([]history.Entry, error)
}

type Handler struct {
	transcriber  TranscribeService
	docs         DocService
	store        storage.Store
	archiver     storage.Archiver
	hist         HistoryService
	defaultModel string
	maxUploadMB  int64
	log          *logger.ZapLogger
}

func NewHandler(
	transcriber TranscribeService,
	docs DocService,
	store storage.Store,
	archiver storage.Archiver,
	hist HistoryService,
	defaultModel string,
	maxUploadMB int64,
	log *logger.ZapLogger,
) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	return &Handler{
		transcriber:  transcriber,
		docs:         docs,
		store:        store,
		archiver:     archiver,
		hist:         hist,
		defaultModel: defaultModel,
		maxUploadMB:  maxUploadMB,
		log:          log,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"model":   h.defaultModel,
		"backend": h.transcriber.Backend(),
	})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{
		"DefaultModel": h.defaultModel,
		"Models":       transcribe.ModelNames(),
	}); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render index", Error: err})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
