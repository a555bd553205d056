// ABOUTME: Gemini text generation for funnel diagnoses
// ABOUTME: Wraps the GenAI SDK client with JSON responses and low temperature

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Config selects the Gemini model and credentials.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint. Empty means Google's.
	BaseURL string
}

// Gemini generates JSON answers from a Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client. It does not contact the API.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

// Generate sends prompt and returns the model's text, asking for JSON.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
