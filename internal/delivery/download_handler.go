package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/nova_transcribe/internal/metrics"
	"github.com/Vovarama1992/nova_transcribe/internal/storage"
)

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f, err := h.store.Open(name)
	if err != nil {
		metrics.Default.RecordDownload(false)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "open download", Error: err})
		writeError(w, http.StatusInternalServerError, "failed to open file: "+err.Error())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stat file: "+err.Error())
		return
	}

	metrics.Default.RecordDownload(true)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name()))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	if _, err := io.Copy(w, f); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "download interrupted", Error: err})
	}
}
