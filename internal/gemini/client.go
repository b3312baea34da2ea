package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
)

type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implModel struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
	generate   generateFunc
}

// New creates a Model that rotates through the supplied API keys on
// rate-limit errors. The batch stages are single-threaded, so the client
// does not need to be safe for concurrent use.
func New(apiKeys []string, model string, log logger.Logger) (Model, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no Gemini API keys supplied (set GOOGLE_API_KEY)")
	}
	return &implModel{
		apiKeys:  apiKeys,
		model:    model,
		logger:   log,
		generate: generateContent,
	}, nil
}

// KeysFromEnv reads GOOGLE_API_KEY, allowing a comma-separated list so
// several keys can share the quota load.
func KeysFromEnv() []string {
	raw := os.Getenv("GOOGLE_API_KEY")
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Generate sends the prompt and returns the response text. Rotates API keys
// on 429 / quota errors; any other failure is returned as-is.
func (m *implModel) Generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(m.apiKeys)
	var lastErr error

	for range attempts {
		key := m.apiKeys[m.currentKey]

		text, err := m.generate(ctx, key, m.model, prompt)
		if err != nil {
			if isQuotaError(err) {
				m.logger.Warn(ctx, "API key %d rate limited, rotating...", m.currentKey+1)
				m.rotateKey()
				lastErr = err
				continue
			}
			return "", err
		}

		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (m *implModel) rotateKey() {
	m.currentKey = (m.currentKey + 1) % len(m.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
