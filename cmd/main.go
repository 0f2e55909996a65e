package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/nova_transcribe/internal/delivery"
	"github.com/Vovarama1992/nova_transcribe/internal/doc"
	"github.com/Vovarama1992/nova_transcribe/internal/history"
	"github.com/Vovarama1992/nova_transcribe/internal/notify"
	"github.com/Vovarama1992/nova_transcribe/internal/storage"
	"github.com/Vovarama1992/nova_transcribe/internal/transcribe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	defaultModel := os.Getenv("WHISPER_MODEL")
	if defaultModel == "" {
		defaultModel = transcribe.DefaultModel
	}
	if _, err := transcribe.ValidateModel(defaultModel); err != nil {
		log.Fatalf("invalid WHISPER_MODEL: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// STORAGE
	// =========================================================================

	store, err := storage.NewLocalStore(os.Getenv("OUTPUT_DIR"))
	if err != nil {
		log.Fatalf("failed to init output dir: %v", err)
	}

	var archiver storage.Archiver
	if os.Getenv("S3_ENDPOINT") != "" {
		archiver, err = storage.NewS3Archiver()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	// =========================================================================
	// OPTIONAL HISTORY (POSTGRES)
	// =========================================================================

	var histService delivery.HistoryService
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db ping failed: %v", err)
		}
		cancel()
		defer db.Close()

		histService = history.NewService(history.NewRepo(db))
	}

	// =========================================================================
	// FAILURE NOTIFICATION
	// =========================================================================

	var notifier transcribe.Notificator
	if os.Getenv("TELEGRAM_ALERT_TOKEN") != "" {
		tg, err := notify.NewTelegramInfra()
		if err != nil {
			log.Fatalf("failed to init telegram notifier: %v", err)
		}
		notifier = notify.NewService(tg)
	}

	// =========================================================================
	// TRANSCRIPTION BACKEND
	// =========================================================================

	backendName := os.Getenv("STT_BACKEND")
	if backendName == "" {
		backendName = "faster-whisper"
	}

	var backend transcribe.Transcriber
	switch backendName {
	case "faster-whisper":
		backend = transcribe.NewFasterWhisperClient()
	case "openai":
		backend = transcribe.NewOpenAIClient()
	case "deepgram":
		backend = transcribe.NewDeepgramClient()
	default:
		log.Fatalf("unknown STT_BACKEND %q (want faster-whisper, openai or deepgram)", backendName)
	}

	transcribeService := transcribe.NewService(backend, backendName, notifier)
	docService := doc.NewService(doc.NewDocxWriter())

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	maxUploadMB, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_MB"), 10, 64)

	handler := delivery.NewHandler(
		transcribeService,
		docService,
		store,
		archiver,
		histService,
		defaultModel,
		maxUploadMB,
		zl,
	)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	delivery.RegisterRoutes(r, handler)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + " (backend=" + backendName + ", model=" + defaultModel + ")",
		Service: "nova_transcribe",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
