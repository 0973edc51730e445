package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"voicenotes/internal/apierr"
	"voicenotes/internal/speech"
)

func transcribeRequest(t *testing.T, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, "/api/transcribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func stageFile(t *testing.T, env *testEnv, originalName string) string {
	t.Helper()
	artifact, err := env.store.Save([]byte("fake audio bytes"), originalName, "audio/webm")
	if err != nil {
		t.Fatalf("staging file: %v", err)
	}
	return artifact.Handle
}

func TestTranscribeUnconfiguredBackend(t *testing.T) {
	env := newTestEnv(t)
	env.handler.Speech = nil

	status, body := env.request(t, transcribeRequest(t, map[string]string{"filename": "whatever.webm"}))
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body %v)", status, body)
	}
}

func TestTranscribeMissingFilename(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.request(t, transcribeRequest(t, map[string]string{}))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.speech.calls != 0 {
		t.Fatalf("backend called %d times for invalid request", env.speech.calls)
	}
}

func TestTranscribeUnknownHandle(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.request(t, transcribeRequest(t, map[string]string{"filename": "audio-1-000000001.webm"}))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestTranscribeUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	handle := stageFile(t, env, "clip.flac")

	status, _ := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.speech.calls != 0 {
		t.Fatal("backend called for unsupported extension")
	}
}

func TestTranscribeSelectsEncodingAndFixedParameters(t *testing.T) {
	cases := []struct {
		originalName string
		wantEncoding string
	}{
		{"a.webm", speech.EncodingWebmOpus},
		{"a.mp3", speech.EncodingMP3},
		{"a.ogg", speech.EncodingOggOpus},
		{"a.opus", speech.EncodingOggOpus},
		{"a.wav", speech.EncodingLinear16},
	}
	for _, tc := range cases {
		t.Run(tc.originalName, func(t *testing.T) {
			env := newTestEnv(t)
			env.speech.result = &speech.Result{Utterances: []speech.Utterance{{Transcript: "hi", Confidence: 0.9}}}
			handle := stageFile(t, env, tc.originalName)

			status, body := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
			if status != http.StatusOK {
				t.Fatalf("status = %d, body %v", status, body)
			}
			if env.speech.lastReq.Encoding != tc.wantEncoding {
				t.Fatalf("encoding = %q, want %q", env.speech.lastReq.Encoding, tc.wantEncoding)
			}
			if env.speech.lastReq.SampleRateHertz != 48000 {
				t.Fatalf("sample rate = %d, want 48000", env.speech.lastReq.SampleRateHertz)
			}
			if env.speech.lastReq.LanguageCode != "en-US" {
				t.Fatalf("language = %q, want en-US", env.speech.lastReq.LanguageCode)
			}
		})
	}
}

func TestTranscribeSuccessAssemblesTranscript(t *testing.T) {
	env := newTestEnv(t)
	env.speech.result = &speech.Result{Utterances: []speech.Utterance{
		{Transcript: "hello world", Confidence: 0.9},
		{Transcript: "no confidence here", Confidence: 0},
		{Transcript: "final part", Confidence: 0.8},
	}}
	handle := stageFile(t, env, "talk.webm")

	status, body := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["transcript"] != "hello world\nno confidence here\nfinal part" {
		t.Fatalf("transcript = %q", body["transcript"])
	}
	if body["wordCount"] != float64(7) {
		t.Fatalf("wordCount = %v, want 7", body["wordCount"])
	}
	// Average over the utterances that reported confidence: (0.9+0.8)/2.
	if body["confidence"] != float64(85) {
		t.Fatalf("confidence = %v, want 85", body["confidence"])
	}
}

func TestTranscribeDeletesStagedFileOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.speech.result = &speech.Result{Utterances: []speech.Utterance{{Transcript: "ok", Confidence: 1}}}
	handle := stageFile(t, env, "talk.webm")

	env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))

	handles, _ := env.store.List()
	if len(handles) != 0 {
		t.Fatalf("staged files remain after successful transcription: %v", handles)
	}
}

func TestTranscribeDeletesStagedFileOnBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.speech.err = apierr.RateLimit("Speech service quota exceeded - try again later")
	handle := stageFile(t, env, "talk.webm")

	status, _ := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", status)
	}

	handles, _ := env.store.List()
	if len(handles) != 0 {
		t.Fatalf("staged files remain after failed transcription: %v", handles)
	}
}

func TestTranscribeEmptyResultIsSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.speech.result = &speech.Result{}
	handle := stageFile(t, env, "silence.ogg")

	status, body := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["transcript"] != "" || body["wordCount"] != float64(0) || body["confidence"] != float64(0) {
		t.Fatalf("empty result body = %v", body)
	}
}

func TestTranscribeAllZeroConfidence(t *testing.T) {
	env := newTestEnv(t)
	env.speech.result = &speech.Result{Utterances: []speech.Utterance{
		{Transcript: "one"},
		{Transcript: "two"},
	}}
	handle := stageFile(t, env, "talk.mp3")

	status, body := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["confidence"] != float64(0) {
		t.Fatalf("confidence = %v, want 0 when no utterance reported one", body["confidence"])
	}
}

func TestTranscribeBackendErrorTranslation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"auth", apierr.Auth("bad credentials"), http.StatusUnauthorized},
		{"bad audio", apierr.BadRequest("corrupt file"), http.StatusBadRequest},
		{"rate limit", apierr.RateLimit("quota"), http.StatusTooManyRequests},
		{"unavailable", apierr.ServiceUnavailable("down"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.speech.err = tc.err
			handle := stageFile(t, env, "talk.webm")

			status, _ := env.request(t, transcribeRequest(t, map[string]string{"filename": handle}))
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
		})
	}
}
