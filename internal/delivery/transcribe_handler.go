package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/nova_transcribe/internal/doc"
	"github.com/Vovarama1992/nova_transcribe/internal/history"
	"github.com/Vovarama1992/nova_transcribe/internal/storage"
	"github.com/Vovarama1992/nova_transcribe/internal/transcribe"
)

func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	model := r.FormValue("model_size")
	if model == "" {
		model = h.defaultModel
	}

	beamSize := 5
	if v := r.FormValue("beam_size"); v != "" {
		beamSize, err = strconv.Atoi(v)
		if err != nil || beamSize <= 0 {
			writeError(w, http.StatusBadRequest, "invalid beam_size")
			return
		}
	}

	var temperature float64
	if v := r.FormValue("temperature"); v != "" {
		temperature, err = strconv.ParseFloat(v, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid temperature")
			return
		}
	}

	task := r.FormValue("task")
	wordTimestamps := truthy(r.FormValue("word_timestamps"))

	inputPath, err := h.store.SaveUpload(header.Filename, file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "save upload", Error: err})
		writeError(w, http.StatusInternalServerError, "failed to store upload: "+err.Error())
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("transcribing %s (%s, model=%s)", header.Filename, humanize.Bytes(uint64(header.Size)), model),
		Service: "nova_transcribe",
	})

	result, err := h.transcriber.Transcribe(r.Context(), transcribe.Request{
		FilePath:       inputPath,
		Model:          model,
		BeamSize:       beamSize,
		Temperature:    float32(temperature),
		Task:           task,
		WordTimestamps: wordTimestamps,
	})
	if err != nil {
		if errors.Is(err, transcribe.ErrModelLoad) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to load model '%s': %v", model, err))
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcription failed", Error: err})
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Transcription failed: %v", err))
		return
	}

	docName := storage.DocumentName(header.Filename, time.Now())
	docBytes, err := h.docs.Write(r.Context(), doc.Transcript{
		SourceFile:  header.Filename,
		Model:       model,
		Language:    result.Language,
		DurationSec: result.DurationSec,
		Text:        result.Text,
		Segments:    result.Segments,
		Timestamps:  wordTimestamps,
	})
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "docx generation failed", Error: err})
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Transcription failed: %v", err))
		return
	}
	if err := h.store.SaveDocument(docName, docBytes); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "docx save failed", Error: err})
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Transcription failed: %v", err))
		return
	}

	if h.archiver != nil {
		go func(name string, data []byte) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := h.archiver.Archive(ctx, name, data,
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document"); err != nil {
				h.log.Log(logger.LogEntry{Level: "warn", Message: "s3 archive failed", Error: err})
			}
		}(docName, docBytes)
	}

	if h.hist != nil {
		entry := history.Entry{
			Filename: header.Filename,
			Model:    model,
			Backend:  h.transcriber.Backend(),
			DocxFile: docName,
		}
		if result.Language != "" {
			lang := result.Language
			entry.Language = &lang
		}
		if result.DurationSec > 0 {
			dur := result.DurationSec
			entry.DurationSec = &dur
		}
		h.hist.Record(r.Context(), entry)
	}

	resp := map[string]any{
		"ok":        true,
		"text":      result.Text,
		"docx_file": "/download/" + docName,
		"model":     model,
		"language":  nullable(result.Language),
		"filename":  header.Filename,
	}
	if result.DurationSec > 0 {
		resp["duration_seconds"] = result.DurationSec
	} else {
		resp["duration_seconds"] = nil
	}
	if wordTimestamps {
		resp["segments"] = result.Segments
	}

	writeJSON(w, http.StatusOK, resp)
}

func truthy(v string) bool {
	switch v {
	case "1", "true", "True", "on", "yes":
		return true
	}
	return false
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
