package speech

import (
	"errors"
	"testing"

	"voicenotes/internal/apierr"
)

func TestEncodingFor(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"audio-1-000000001.webm", EncodingWebmOpus},
		{"audio-1-000000001.mp3", EncodingMP3},
		{"audio-1-000000001.ogg", EncodingOggOpus},
		{"audio-1-000000001.opus", EncodingOggOpus},
		{"audio-1-000000001.wav", EncodingLinear16},
		{"audio-1-000000001.WAV", EncodingLinear16},
		{"audio-1-000000001.MP3", EncodingMP3},
		{"no-extension", EncodingLinear16},
	}
	for _, tc := range cases {
		if got := EncodingFor(tc.filename); got != tc.want {
			t.Errorf("EncodingFor(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestSupportedExtension(t *testing.T) {
	supported := []string{"a.webm", "a.wav", "a.mp3", "a.ogg", "a.opus", "a.WEBM"}
	for _, f := range supported {
		if !SupportedExtension(f) {
			t.Errorf("SupportedExtension(%q) = false, want true", f)
		}
	}
	unsupported := []string{"a.flac", "a.m4a", "a.txt", "a", ""}
	for _, f := range unsupported {
		if SupportedExtension(f) {
			t.Errorf("SupportedExtension(%q) = true, want false", f)
		}
	}
}

func TestTranslateGoogleError(t *testing.T) {
	cases := []struct {
		name       string
		httpStatus int
		body       string
		wantStatus int
	}{
		{"unauthenticated", 401, `{"error":{"code":401,"status":"UNAUTHENTICATED","message":"bad key"}}`, 401},
		{"permission denied", 403, `{"error":{"code":403,"status":"PERMISSION_DENIED","message":"no access"}}`, 401},
		{"invalid argument", 400, `{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad audio"}}`, 400},
		{"quota", 429, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`, 429},
		{"unavailable", 503, `{"error":{"code":503,"status":"UNAVAILABLE","message":"down"}}`, 503},
		{"status wins over http code", 200, `{"error":{"status":"RESOURCE_EXHAUSTED","message":"quota"}}`, 429},
		{"unknown", 500, `{"error":{"code":500,"status":"INTERNAL","message":"boom"}}`, 500},
		{"unparseable body", 502, `<html>bad gateway</html>`, 503},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := translateGoogleError(tc.httpStatus, []byte(tc.body))
			var apiErr *apierr.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("translateGoogleError returned untyped error: %v", err)
			}
			if apiErr.Status != tc.wantStatus {
				t.Fatalf("status = %d, want %d (err: %v)", apiErr.Status, tc.wantStatus, err)
			}
		})
	}
}
