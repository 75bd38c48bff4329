package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiBackend calls Google's Gemini API through the genai SDK.
type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGeminiBackend(ctx context.Context, cfg LLMConfig) (*geminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiBackend{client: client, model: cfg.Model}, nil
}

func (b *geminiBackend) complete(ctx context.Context, c completion) (string, string, error) {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.Temperature)),
	}
	if c.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(c.MaxTokens)
	}
	if c.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(c.System, genai.RoleUser)
	}

	resp, err := b.client.Models.GenerateContent(ctx, c.Model, genai.Text(c.Prompt), gc)
	if err != nil {
		return "", "", fmt.Errorf("gemini generate: %w", err)
	}
	model := resp.ModelVersion
	if model == "" {
		model = c.Model
	}
	return resp.Text(), model, nil
}

func (b *geminiBackend) ping(ctx context.Context) bool {
	_, err := b.client.Models.Get(ctx, b.model, nil)
	return err == nil
}
