package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"voicenotes/internal/apierr"
	"voicenotes/models"
)

// MaxUploadBytes caps a single audio upload at 50 MiB.
const MaxUploadBytes = 50 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"audio/webm":  true,
	"audio/wav":   true,
	"audio/wave":  true,
	"audio/x-wav": true,
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/ogg":   true,
	"audio/opus":  true,
	// Browsers commonly label MediaRecorder output as video/webm even for
	// audio-only streams.
	"video/webm": true,
}

var allowedUploadExtensions = map[string]bool{
	".webm": true,
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".opus": true,
}

// UploadAudio receives a multipart audio file and stages it for
// transcription, returning the generated handle and file metadata.
func (h *ApplicationHandler) UploadAudio(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return apierr.BadRequest("No audio file provided - use the 'audio' form field")
	}

	mimeType := file.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedMimeTypes[strings.ToLower(mimeType)] && !allowedUploadExtensions[ext] {
		return apierr.BadRequest(fmt.Sprintf("Invalid file type %q - allowed: webm, wav, mp3, ogg, opus", mimeType))
	}

	if file.Size > MaxUploadBytes {
		return apierr.BadRequest(fmt.Sprintf("File too large (%.2fMB) - maximum is 50MB", float64(file.Size)/(1024*1024)))
	}

	src, err := file.Open()
	if err != nil {
		return apierr.Internal("Failed to open uploaded file").WithCause(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apierr.Internal("Failed to read uploaded file").WithCause(err)
	}

	artifact, err := h.Store.Save(data, file.Filename, mimeType)
	if err != nil {
		return apierr.Internal("Failed to store uploaded file").WithCause(err)
	}

	h.Logger.WithFields(logrus.Fields{
		"handle":        artifact.Handle,
		"original_name": file.Filename,
		"size_bytes":    artifact.ByteSize,
		"mimetype":      mimeType,
	}).Info("Audio file staged")

	return c.Status(fiber.StatusOK).JSON(models.UploadResponse{
		Success: true,
		File: models.UploadedFile{
			Filename:     artifact.Handle,
			OriginalName: file.Filename,
			Size:         artifact.ByteSize,
			SizeInMB:     fmt.Sprintf("%.2f", float64(artifact.ByteSize)/(1024*1024)),
			Mimetype:     mimeType,
			UploadedAt:   artifact.UploadedAt,
		},
	})
}
