package quotes

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"time"
)

// Provider abstracts a chat-style text generator that returns freeform
// quote lines. Implementations must be safe for sequential reuse.
type Provider interface {
	// GenerateQuotes asks for count quote lines about the given theme.
	// seed and timestamp are embedded in the prompt to discourage caching.
	GenerateQuotes(ctx context.Context, count int, theme, seed, timestamp string) ([]string, error)
	ModelName() string
}

// NewDefaultProvider returns a provider based on available credentials.
// Cohere is preferred when COHERE_API_KEY is set, then OpenAI via
// OPENAI_API_KEY. Returns nil when neither is configured.
func NewDefaultProvider() Provider {
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		return NewCohereProvider(key, os.Getenv("COHERE_CHAT_MODEL"))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAIProvider(key, os.Getenv("OPENAI_CHAT_MODEL"))
	}
	return nil
}

// systemPrompt frames the generator as a film historian so the lines come
// back in the expected 'QUOTE' - MOVIE TITLE (YEAR) shape.
const systemPrompt = "You are a film historian specializing in horror movies. " +
	"Provide authentic, memorable quotes from horror films. Include only the quote " +
	"and the movie title. Format as: 'QUOTE' - MOVIE TITLE (YEAR). Ensure each quote " +
	"is unique and different from any you've provided before."

// newHTTP11Client forces HTTP/1.1; some chat endpoints misbehave over HTTP/2
// with long-lived connections.
func newHTTP11Client() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
}
