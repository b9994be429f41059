package llm

import (
	"context"
	"errors"
	"strings"
)

// GenerationConfig carries the per-call generation settings used by the
// pipelines. Temperature is typically in [0,1]; MaxTokens is optional.
type GenerationConfig struct {
	Model       string
	Temperature float64
	MaxTokens   *int
}

// Provider is the capability consumed by the analysis and rewrite pipelines:
// a single synchronous completion given a system and a user instruction.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, cfg GenerationConfig) (string, error)
}

// ClientProvider adapts an LLMClient to the Provider contract.
type ClientProvider struct {
	client LLMClient
}

// NewProvider wraps the given client as a Provider.
func NewProvider(client LLMClient) (*ClientProvider, error) {
	if client == nil {
		return nil, errors.New("llm: client cannot be nil")
	}
	return &ClientProvider{client: client}, nil
}

// Generate issues one chat completion and returns the first choice verbatim.
func (p *ClientProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, cfg GenerationConfig) (string, error) {
	temperature := cfg.Temperature
	req := &ChatRequest{
		Model: cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: &temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	resp, err := p.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("llm: completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
