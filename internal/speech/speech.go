// Package speech wraps the speech-recognition backend behind a small
// interface so the transcription handler can be tested with a stub.
package speech

import (
	"context"
	"path/filepath"
	"strings"
)

// Encoding identifiers understood by the recognition backend.
const (
	EncodingWebmOpus = "WEBM_OPUS"
	EncodingMP3      = "MP3"
	EncodingOggOpus  = "OGG_OPUS"
	EncodingLinear16 = "LINEAR16"
)

// Utterance is one recognized segment with the backend's top alternative.
type Utterance struct {
	Transcript string
	// Confidence in [0,1]; 0 means the backend reported none.
	Confidence float64
}

// Result is the synchronous recognition outcome for one audio file.
type Result struct {
	Utterances []Utterance
}

// Request carries the audio bytes plus the fixed recognition parameters.
type Request struct {
	Audio           []byte
	Encoding        string
	SampleRateHertz int
	LanguageCode    string
}

// Recognizer submits audio for synchronous recognition.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) (*Result, error)
}

var allowedExtensions = map[string]bool{
	".webm": true,
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".opus": true,
}

// SupportedExtension reports whether the file extension can be transcribed.
func SupportedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// EncodingFor maps a filename extension to the backend encoding identifier.
// Unknown extensions fall back to LINEAR16 (uncompressed PCM, e.g. wav).
func EncodingFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".webm":
		return EncodingWebmOpus
	case ".mp3":
		return EncodingMP3
	case ".ogg", ".opus":
		return EncodingOggOpus
	default:
		return EncodingLinear16
	}
}
