package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
)

var uploadHandlePattern = regexp.MustCompile(`^audio-\d+-\d{9}\.wav$`)

func multipartAudioRequest(t *testing.T, filename, mimeType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/upload-audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadWavReturnsHandle(t *testing.T) {
	env := newTestEnv(t)
	data := make([]byte, 2*1024*1024)

	status, body := env.request(t, multipartAudioRequest(t, "lecture.wav", "audio/wav", data))
	if status != http.StatusOK {
		t.Fatalf("upload status = %d, body %v", status, body)
	}
	if body["success"] != true {
		t.Fatalf("upload body missing success: %v", body)
	}

	file, ok := body["file"].(map[string]interface{})
	if !ok {
		t.Fatalf("upload body missing file: %v", body)
	}
	handle, _ := file["filename"].(string)
	if !uploadHandlePattern.MatchString(handle) {
		t.Fatalf("handle %q does not match audio-<digits>-<digits>.wav", handle)
	}
	if file["originalName"] != "lecture.wav" {
		t.Fatalf("originalName = %v", file["originalName"])
	}
	if file["sizeInMB"] != "2.00" {
		t.Fatalf("sizeInMB = %v, want 2.00", file["sizeInMB"])
	}
	if !env.store.Exists(handle) {
		t.Fatal("uploaded file not present in staging area")
	}
}

func TestUploadAcceptsByExtensionWhenMimeIsGeneric(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.request(t, multipartAudioRequest(t, "clip.webm", "application/octet-stream", []byte("x")))
	if status != http.StatusOK {
		t.Fatalf("upload status = %d, body %v", status, body)
	}
}

func TestUploadAcceptsByMimeWhenExtensionIsUnknown(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.request(t, multipartAudioRequest(t, "blob", "audio/webm", []byte("x")))
	if status != http.StatusOK {
		t.Fatalf("upload status = %d, body %v", status, body)
	}
}

func TestUploadRejectsInvalidType(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.request(t, multipartAudioRequest(t, "notes.txt", "text/plain", []byte("hello")))
	if status != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400 (body %v)", status, body)
	}
	if body["error"] != true {
		t.Fatalf("error body = %v", body)
	}

	handles, _ := env.store.List()
	if len(handles) != 0 {
		t.Fatalf("rejected upload left staged files: %v", handles)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	env := newTestEnv(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("note", "no audio here")
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/upload-audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	status, _ := env.request(t, req)
	if status != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400", status)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t)
	data := make([]byte, MaxUploadBytes+1)

	status, body := env.request(t, multipartAudioRequest(t, "huge.wav", "audio/wav", data))
	if status != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400 (body %v)", status, body)
	}

	handles, _ := env.store.List()
	if len(handles) != 0 {
		t.Fatalf("oversized upload left staged files: %v", handles)
	}
}

func TestUploadRejectsFileOverBodyLimit(t *testing.T) {
	env := newTestEnv(t)
	// Well past the transport body limit, so the request never reaches the
	// handler. It still reads as a 400, not a bare 413.
	data := make([]byte, MaxUploadBytes+2*1024*1024)

	status, body := env.request(t, multipartAudioRequest(t, "huge.wav", "audio/wav", data))
	if status != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400 (body %v)", status, body)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "too large") {
		t.Fatalf("message = %v, want a file-too-large message", body["message"])
	}

	handles, _ := env.store.List()
	if len(handles) != 0 {
		t.Fatalf("oversized upload left staged files: %v", handles)
	}
}
