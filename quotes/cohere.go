package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereProvider generates quote lines through the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

func NewCohereProvider(apiKey, model string) *CohereProvider {
	if model == "" {
		model = "command-r-plus-08-2024"
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(newHTTP11Client()),
	)
	return &CohereProvider{client: client, model: model}
}

func (c *CohereProvider) ModelName() string { return c.model }

func (c *CohereProvider) GenerateQuotes(ctx context.Context, count int, theme, seed, timestamp string) ([]string, error) {
	temperature := 1.0
	topP := 0.9

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &c.model,
		Preamble:    strPtr(systemPrompt),
		Message:     userPrompt(count, theme, seed, timestamp),
		Temperature: &temperature,
		P:           &topP,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, errors.New("cohere chat returned empty response")
	}

	return splitLines(resp.Text), nil
}

func userPrompt(count int, theme, seed, timestamp string) string {
	return fmt.Sprintf(
		"Provide %d different, authentic horror movie quotes focusing on %s. "+
			"Choose quotes that are impactful, memorable, and would look good on a dramatic background. "+
			"Random seed: %s, timestamp: %s. Make sure these are completely different from typical "+
			"horror quotes and avoid common, overused lines.",
		count, theme, seed, timestamp)
}

func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func strPtr(s string) *string { return &s }
