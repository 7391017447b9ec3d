package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GoogleDefaultModel is used when no model is configured.
const GoogleDefaultModel = "gemini-2.0-flash-exp"

func init() {
	RegisterProviderFactory("google", newGoogleProvider)
}

// googleProvider implements CoreLLM for Google's Gemini API.
type googleProvider struct {
	client *genai.Client
	model  string
}

func newGoogleProvider(config ClientConfig) (CoreLLM, error) {
	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google client: %w", err)
	}

	return &googleProvider{client: client, model: model}, nil
}

// DoRequest sends a generate-content request and returns the response
// text with token usage from the response metadata.
func (p *googleProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	var genConfig *genai.GenerateContentConfig
	if temp, ok := opts["temperature"].(float64); ok {
		t := float32(temp)
		genConfig = &genai.GenerateContentConfig{Temperature: &t}
	}
	if maxTokens, ok := opts["max_tokens"].(int); ok && maxTokens > 0 {
		if genConfig == nil {
			genConfig = &genai.GenerateContentConfig{}
		}
		genConfig.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", 0, 0, p.wrapError(err)
	}

	content := resp.Text()
	if content == "" {
		return "", 0, 0, ErrEmptyResponse
	}

	tokensIn := EstimateTokens(prompt)
	tokensOut := EstimateTokens(content)
	if usage := resp.UsageMetadata; usage != nil {
		if usage.PromptTokenCount > 0 {
			tokensIn = int(usage.PromptTokenCount)
		}
		if usage.CandidatesTokenCount > 0 {
			tokensOut = int(usage.CandidatesTokenCount)
		}
	}
	return content, tokensIn, tokensOut, nil
}

func (p *googleProvider) wrapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return classifyHTTPError("google", apiErr.Code, apiErr.Message, err)
	}
	return classifyHTTPError("google", 0, "request failed", err)
}

// GetModel returns the configured Google model name.
func (p *googleProvider) GetModel() string { return p.model }
