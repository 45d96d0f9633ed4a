package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

var ErrEmptyResponse = errors.New("gemini returned no content")

// GeminiClient is the compatibility oracle backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(0.2)

	return &GeminiClient{
		client: client,
		model:  m,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Compatibility asks the model for a bare 0-30 score. The raw reply is returned
// untouched; parsing and clamping belong to the caller.
func (c *GeminiClient) Compatibility(ctx context.Context, preference, introduction string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(CompatibilityPrompt(preference, introduction)))
	if err != nil {
		return "", fmt.Errorf("gemini compatibility request failed: %w", err)
	}
	return responseText(resp)
}

// CompatibilityPrompt renders the scoring instruction for one candidate.
func CompatibilityPrompt(preference, introduction string) string {
	return fmt.Sprintf(`
		Task: Compatibility Score
		User Preference: %q
		Candidate Introduction: %q

		System Prompt: Analyze compatibility based on interests and vibe. Return ONLY a single number from 0 to 30. No text.
	`, preference, introduction)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
