// Package handlers implements the HTTP pipeline stages: audio ingress,
// transcription and note structuring.
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"voicenotes/internal/notes"
	"voicenotes/internal/speech"
	"voicenotes/internal/staging"
)

var validate = validator.New()

// ApplicationHandler holds the injected dependencies for all handlers.
// Speech and Notes are interfaces so tests can substitute stubs; either may
// be nil when the corresponding credential is not configured, in which case
// the owning route fails with 503 before any other validation.
type ApplicationHandler struct {
	Speech speech.Recognizer
	Notes  notes.Generator
	Store  *staging.Store
	Logger *logrus.Logger
}

// NewApplicationHandler wires up the handler dependencies.
func NewApplicationHandler(recognizer speech.Recognizer, generator notes.Generator, store *staging.Store, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Speech: recognizer,
		Notes:  generator,
		Store:  store,
		Logger: logger,
	}
}
