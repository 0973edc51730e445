// Package models holds the wire types shared by the handlers and the Go
// client. Every entity here is ephemeral: nothing outlives the request that
// produced it.
package models

import "time"

// UploadedFile describes a staged artifact right after upload.
type UploadedFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	SizeInMB     string    `json:"sizeInMB"`
	Mimetype     string    `json:"mimetype"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadResponse is the success body of POST /api/upload-audio.
type UploadResponse struct {
	Success bool         `json:"success"`
	File    UploadedFile `json:"file"`
}

// TranscribeRequest is the body of POST /api/transcribe.
type TranscribeRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// TranscribeResponse is the success body of POST /api/transcribe.
// Confidence is a percentage in [0,100]; ProcessingTime is seconds.
type TranscribeResponse struct {
	Success        bool    `json:"success"`
	Transcript     string  `json:"transcript"`
	WordCount      int     `json:"wordCount"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processingTime"`
}

// StructureNotesRequest is the body of POST /api/structure-notes.
type StructureNotesRequest struct {
	Transcript string `json:"transcript"`
}

// NotesMetadata reports input/output measurements for a structuring call.
type NotesMetadata struct {
	InputWords       int     `json:"inputWords"`
	InputCharacters  int     `json:"inputCharacters"`
	OutputWords      int     `json:"outputWords"`
	OutputCharacters int     `json:"outputCharacters"`
	ProcessingTime   float64 `json:"processingTime"`
	Model            string  `json:"model"`
}

// StructureNotesResponse is the success body of POST /api/structure-notes.
type StructureNotesResponse struct {
	Success  bool          `json:"success"`
	Notes    string        `json:"notes"`
	Metadata NotesMetadata `json:"metadata"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}
