package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voicenotes/internal/apierr"
)

const defaultEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

// GoogleClient calls the Google Cloud Speech-to-Text synchronous REST API.
type GoogleClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewGoogleClient builds a recognizer authenticated with an API key.
func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 5 * time.Minute},
	}
}

type recognizeConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
	UseEnhanced                bool   `json:"useEnhanced"`
	Model                      string `json:"model"`
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Recognize submits the audio and blocks until the backend responds.
func (g *GoogleClient) Recognize(ctx context.Context, req Request) (*Result, error) {
	body := recognizeRequest{
		Config: recognizeConfig{
			Encoding:                   req.Encoding,
			SampleRateHertz:            req.SampleRateHertz,
			LanguageCode:               req.LanguageCode,
			EnableAutomaticPunctuation: true,
			UseEnhanced:                true,
			Model:                      "latest_long",
		},
	}
	body.Audio.Content = base64.StdEncoding.EncodeToString(req.Audio)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding recognize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, apierr.ServiceUnavailable("Speech service unavailable").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Internal("Failed to read speech service response").WithCause(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, translateGoogleError(resp.StatusCode, respBody)
	}

	var decoded recognizeResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, apierr.Internal("Malformed speech service response").WithCause(err)
	}

	result := &Result{}
	for _, r := range decoded.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		result.Utterances = append(result.Utterances, Utterance{
			Transcript: r.Alternatives[0].Transcript,
			Confidence: r.Alternatives[0].Confidence,
		})
	}
	return result, nil
}

// translateGoogleError maps the backend's structured error status onto the
// API taxonomy. The status field is the stable contract; HTTP status is the
// fallback when it is absent.
func translateGoogleError(httpStatus int, body []byte) error {
	var ge googleError
	_ = json.Unmarshal(body, &ge)

	status := ge.Error.Status
	message := ge.Error.Message
	if message == "" {
		message = fmt.Sprintf("speech service error (HTTP %d)", httpStatus)
	}

	switch {
	case status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED" ||
		httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return apierr.Auth("Speech service authentication failed - check API credentials").
			WithCause(fmt.Errorf("%s: %s", status, message))
	case status == "INVALID_ARGUMENT" || httpStatus == http.StatusBadRequest:
		return apierr.BadRequest("Audio could not be processed - invalid or corrupted file").
			WithCause(fmt.Errorf("%s: %s", status, message))
	case status == "RESOURCE_EXHAUSTED" || httpStatus == http.StatusTooManyRequests:
		return apierr.RateLimit("Speech service quota exceeded - try again later").
			WithCause(fmt.Errorf("%s: %s", status, message))
	case status == "UNAVAILABLE" || httpStatus == http.StatusServiceUnavailable ||
		httpStatus == http.StatusBadGateway || httpStatus == http.StatusGatewayTimeout:
		return apierr.ServiceUnavailable("Speech service temporarily unavailable").
			WithCause(fmt.Errorf("%s: %s", status, message))
	default:
		return apierr.Internal("Transcription failed").
			WithCause(fmt.Errorf("%s: %s", status, message))
	}
}
