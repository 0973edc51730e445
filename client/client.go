// Package client is a Go client for the voicenotes API. It performs the
// same orchestration the browser does: upload the recorded artifact, request
// transcription by handle, then send the transcript for structuring.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"voicenotes/models"
)

// Client talks to a running voicenotes API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL (e.g. "http://localhost:3000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// UploadAudio stages an audio artifact and returns its handle metadata.
func (c *Client) UploadAudio(ctx context.Context, audio []byte, filename, mimeType string) (*models.UploadedFile, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-audio", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.File, nil
}

// Transcribe runs the staged artifact through the transcription stage.
func (c *Client) Transcribe(ctx context.Context, handle string) (*models.TranscribeResponse, error) {
	var resp models.TranscribeResponse
	if err := c.postJSON(ctx, "/api/transcribe", models.TranscribeRequest{Filename: handle}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StructureNotes sends a transcript through the structuring stage.
func (c *Client) StructureNotes(ctx context.Context, transcript string) (*models.StructureNotesResponse, error) {
	var resp models.StructureNotesResponse
	if err := c.postJSON(ctx, "/api/structure-notes", models.StructureNotesRequest{Transcript: transcript}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProcessRecording runs the full pipeline for a recorded artifact: upload,
// transcribe, structure. Stages run sequentially; the first failure aborts.
func (c *Client) ProcessRecording(ctx context.Context, audio []byte, filename, mimeType string) (*models.StructureNotesResponse, error) {
	uploaded, err := c.UploadAudio(ctx, audio, filename, mimeType)
	if err != nil {
		return nil, fmt.Errorf("uploading audio: %w", err)
	}

	transcribed, err := c.Transcribe(ctx, uploaded.Filename)
	if err != nil {
		return nil, fmt.Errorf("transcribing %s: %w", uploaded.Filename, err)
	}

	structured, err := c.StructureNotes(ctx, transcribed.Transcript)
	if err != nil {
		return nil, fmt.Errorf("structuring notes: %w", err)
	}
	return structured, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &errBody)
		if errBody.Message == "" {
			errBody.Message = strings.TrimSpace(string(respBody))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
