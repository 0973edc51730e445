package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"voicenotes/internal/apierr"
	"voicenotes/internal/notes"
	"voicenotes/models"
	"voicenotes/utils"
)

// structureNotesPayload decodes the transcript as raw JSON first so a
// present-but-non-string value can be rejected distinctly from a missing one.
type structureNotesPayload struct {
	Transcript json.RawMessage `json:"transcript"`
}

// StructureNotes turns a transcript into structured study notes via the
// generation backend, guarded by local size quotas.
func (h *ApplicationHandler) StructureNotes(c *fiber.Ctx) error {
	if h.Notes == nil {
		return apierr.ServiceUnavailable("Notes service not configured - set OPENAI_API_KEY")
	}

	payload := new(structureNotesPayload)
	if err := c.BodyParser(payload); err != nil {
		return apierr.BadRequest("Invalid request body - expected JSON with a 'transcript' field")
	}
	if len(payload.Transcript) == 0 || string(payload.Transcript) == "null" {
		return apierr.BadRequest("Transcript is required")
	}

	var transcript string
	if err := json.Unmarshal(payload.Transcript, &transcript); err != nil {
		return apierr.BadRequest("Transcript must be a string")
	}

	inputChars := utf8.RuneCountInString(transcript)
	inputWords := utils.CountWords(transcript)

	if inputWords > notes.MaxInputWords {
		return apierr.QuotaExceeded(
			fmt.Sprintf("Transcript too long (%d words) - maximum is %d", inputWords, notes.MaxInputWords),
			"currentWords", inputWords,
			"maxWords", notes.MaxInputWords,
		)
	}
	if inputChars > notes.MaxInputCharacters {
		return apierr.QuotaExceeded(
			fmt.Sprintf("Transcript too long (%d characters) - maximum is %d", inputChars, notes.MaxInputCharacters),
			"currentCharacters", inputChars,
			"maxCharacters", notes.MaxInputCharacters,
		)
	}
	if inputWords < notes.MinInputWords {
		return apierr.BadRequest(fmt.Sprintf("Transcript too short (%d words) - need at least %d words to structure notes", inputWords, notes.MinInputWords))
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Context(), backendTimeout)
	defer cancel()

	generated, err := h.Notes.Generate(ctx, notes.BuildPrompt(transcript))
	if err != nil {
		h.Logger.WithFields(logrus.Fields{
			"input_words": inputWords,
			"error":       err.Error(),
		}).Error("Notes backend call failed")
		return apierr.From(err)
	}

	if strings.TrimSpace(generated) == "" {
		return apierr.Internal("Notes service returned an empty response")
	}

	processing := utils.Round1(time.Since(start).Seconds())
	h.Logger.WithFields(logrus.Fields{
		"input_words":        inputWords,
		"output_words":       utils.CountWords(generated),
		"model":              h.Notes.Model(),
		"processing_seconds": processing,
	}).Info("Notes structured")

	return c.Status(fiber.StatusOK).JSON(models.StructureNotesResponse{
		Success: true,
		Notes:   generated,
		Metadata: models.NotesMetadata{
			InputWords:       inputWords,
			InputCharacters:  inputChars,
			OutputWords:      utils.CountWords(generated),
			OutputCharacters: utf8.RuneCountInString(generated),
			ProcessingTime:   processing,
			Model:            h.Notes.Model(),
		},
	})
}
