package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// Generator calls the Gemini API for text completions.
type Generator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ ports.Generator = (*Generator)(nil)

// Option customises the generator.
type Option func(*options)

type options struct {
	baseURL     string
	temperature *float32
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = strings.TrimSpace(url) }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *options) { o.temperature = &t }
}

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(ctx context.Context, apiKey, model string, opts ...Option) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("genai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g := &Generator{client: client, model: model}
	if o.temperature != nil {
		g.config = &genai.GenerateContentConfig{Temperature: o.temperature}
	}
	return g, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends the prompt as a single user turn and returns the concatenated text parts.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("generate content: empty response")
	}
	return resp.Text(), nil
}
