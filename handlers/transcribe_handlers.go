package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"voicenotes/internal/apierr"
	"voicenotes/internal/speech"
	"voicenotes/models"
	"voicenotes/utils"
)

// backendTimeout bounds each external backend call.
const backendTimeout = 120 * time.Second

// Transcribe runs the staged artifact through the speech backend. The
// staged file is deleted after the attempt regardless of outcome.
func (h *ApplicationHandler) Transcribe(c *fiber.Ctx) error {
	if h.Speech == nil {
		return apierr.ServiceUnavailable("Transcription service not configured - set GOOGLE_SPEECH_API_KEY")
	}

	payload := new(models.TranscribeRequest)
	if err := c.BodyParser(payload); err != nil {
		return apierr.BadRequest("Invalid request body - expected JSON with a 'filename' field")
	}
	if err := validate.Struct(payload); err != nil {
		return apierr.BadRequest(utils.FormatValidationErrors(err))
	}

	if !h.Store.Exists(payload.Filename) {
		return apierr.NotFound("No staged audio file found for that filename")
	}

	if !speech.SupportedExtension(payload.Filename) {
		// Still staged: an unsupported extension never reached the backend,
		// so there was no transcription attempt to clean up after.
		return apierr.BadRequest("Unsupported audio format - allowed: webm, wav, mp3, ogg, opus")
	}

	audio, err := h.Store.Read(payload.Filename)
	if err != nil {
		h.removeStaged(payload.Filename)
		return apierr.Internal("Failed to read staged audio file").WithCause(err)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Context(), backendTimeout)
	defer cancel()

	result, err := h.Speech.Recognize(ctx, speech.Request{
		Audio:           audio,
		Encoding:        speech.EncodingFor(payload.Filename),
		SampleRateHertz: 48000,
		LanguageCode:    "en-US",
	})

	// The staged file is consumed by the attempt, success or failure.
	h.removeStaged(payload.Filename)

	if err != nil {
		h.Logger.WithFields(logrus.Fields{
			"handle": payload.Filename,
			"error":  err.Error(),
		}).Error("Speech backend call failed")
		return apierr.From(err)
	}

	transcript, confidence := assembleTranscript(result)
	processing := utils.Round1(time.Since(start).Seconds())

	h.Logger.WithFields(logrus.Fields{
		"handle":             payload.Filename,
		"word_count":         utils.CountWords(transcript),
		"confidence":         confidence,
		"processing_seconds": processing,
	}).Info("Transcription completed")

	return c.Status(fiber.StatusOK).JSON(models.TranscribeResponse{
		Success:        true,
		Transcript:     transcript,
		WordCount:      utils.CountWords(transcript),
		Confidence:     confidence,
		ProcessingTime: processing,
	})
}

// assembleTranscript joins each utterance's top transcript with newlines and
// averages confidence over the utterances that reported one, as a percent.
// An empty backend result yields an empty transcript with zero confidence.
func assembleTranscript(result *speech.Result) (string, float64) {
	if result == nil || len(result.Utterances) == 0 {
		return "", 0
	}

	lines := make([]string, 0, len(result.Utterances))
	var confidenceSum float64
	var confidenceCount int
	for _, u := range result.Utterances {
		lines = append(lines, u.Transcript)
		if u.Confidence != 0 {
			confidenceSum += u.Confidence
			confidenceCount++
		}
	}

	var confidence float64
	if confidenceCount > 0 {
		confidence = utils.Round1(confidenceSum / float64(confidenceCount) * 100)
	}
	return strings.Join(lines, "\n"), confidence
}

// removeStaged deletes a staged file; failure is logged, never surfaced, so
// cleanup cannot mask the primary outcome.
func (h *ApplicationHandler) removeStaged(handle string) {
	if err := h.Store.Remove(handle); err != nil {
		h.Logger.WithFields(logrus.Fields{
			"handle": handle,
			"error":  err.Error(),
		}).Warn("Failed to delete staged audio file")
	}
}
