// Package notes wraps the text-generation backend that turns a raw
// transcript into structured study notes.
package notes

import (
	"context"
	"fmt"
)

// Limits for a single structuring request. Oversized transcripts are
// rejected locally before any metered backend call.
const (
	MaxInputCharacters = 100_000
	MaxInputWords      = 25_000
	MinInputWords      = 10
)

// Generator produces structured notes from a filled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Model names the backing model, reported in response metadata.
	Model() string
}

// BuildPrompt embeds the transcript verbatim into the instructional template.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(`You are an expert note-taker. Transform the following transcript into well-organized study notes.

Requirements:
- Start with a clear, descriptive title
- Follow with a 2-3 sentence overview of the content
- Organize the body into logical sections with headers
- Use bullet points for key facts and details
- End with a "Key Takeaways" section containing 3-5 items
- Format everything in markdown: use # headers, - bullets, and **bold** for emphasis

Transcript:
%s`, transcript)
}
