package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"voicenotes/config"
	"voicenotes/handlers"
	"voicenotes/internal/apierr"
	"voicenotes/internal/notes"
	"voicenotes/internal/speech"
	"voicenotes/internal/staging"
	"voicenotes/middleware"
)

// staleArtifactAge is how long a staged file may survive a crash between
// upload and transcription before the startup sweep removes it.
const staleArtifactAge = time.Hour

func main() {
	cfg := config.Load()
	log := config.NewLogger()

	store, err := staging.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize staging store: %v", err)
	}
	if removed, err := store.Sweep(staleArtifactAge); err != nil {
		log.Warnf("Staging sweep failed: %v", err)
	} else if removed > 0 {
		log.Infof("Removed %d stale staged file(s)", removed)
	}

	var recognizer speech.Recognizer
	if cfg.SpeechAPIKey != "" {
		recognizer = speech.NewGoogleClient(cfg.SpeechAPIKey)
	} else {
		log.Warn("GOOGLE_SPEECH_API_KEY not set - transcription disabled")
	}

	var generator notes.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = notes.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.NotesModel)
	} else {
		log.Warn("OPENAI_API_KEY not set - note structuring disabled")
	}

	h := handlers.NewApplicationHandler(recognizer, generator, store, log)
	app := newApp(cfg, h, log)

	log.Infof("Starting %s on port %s", handlers.ServiceName, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func newApp(cfg *config.Config, h *handlers.ApplicationHandler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    handlers.MaxUploadBytes + 1024*1024,
		ErrorHandler: apierr.Handler(cfg.Development(), log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Development()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigin,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Get("", h.Describe)
	api.Post("/upload-audio", h.UploadAudio)
	api.Post("/transcribe", h.Transcribe)
	api.Post("/structure-notes", h.StructureNotes)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
			"path":    c.OriginalURL(),
		})
	})

	return app
}
