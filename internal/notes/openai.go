package notes

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voicenotes/internal/apierr"
)

// OpenAIGenerator generates notes with a single synchronous chat completion.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator for the given API key and model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIGenerator) Model() string { return g.model }

// Generate submits the filled prompt and returns the full response text.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// translateOpenAIError maps SDK failures onto the API taxonomy. The typed
// *openai.APIError carries the HTTP status and is preferred; substring
// matching on the message is the last-resort fallback for errors that
// arrive untyped.
func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apierr.Auth("Notes service authentication failed - check API credentials").WithCause(err)
		case http.StatusTooManyRequests:
			return apierr.RateLimit("Notes service quota exceeded - try again later").WithCause(err)
		case http.StatusBadRequest:
			if code, ok := apiErr.Code.(string); ok && code == "content_filter" {
				return apierr.BadRequest("Content blocked by safety filters").WithCause(err)
			}
			return apierr.BadRequest("Notes request rejected by backend").WithCause(err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid api key") || strings.Contains(msg, "incorrect api key"):
		return apierr.Auth("Notes service authentication failed - check API credentials").WithCause(err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return apierr.RateLimit("Notes service quota exceeded - try again later").WithCause(err)
	case strings.Contains(msg, "content_filter") || strings.Contains(msg, "safety"):
		return apierr.BadRequest("Content blocked by safety filters").WithCause(err)
	default:
		return apierr.Internal("Failed to generate structured notes").WithCause(err)
	}
}
