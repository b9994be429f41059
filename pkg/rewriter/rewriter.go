// Package rewriter turns rough user text into natural English in a requested
// style. It is a thin prompting layer over an llm.Provider; all branching is
// a style-to-instruction lookup.
package rewriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pulse-api/pkg/llm"
)

const baseSystemPrompt = "You are an assistant that rewrites user text into natural, native English while preserving meaning." +
	" You fix grammar, clarity, and tone according to the requested style." +
	" Do not add new information. If text is already natural, return it with minimal edits."

// DefaultStyle is used when the requested style is empty or unknown.
const DefaultStyle = "professional"

var styleInstructions = map[string]string{
	"professional": "Use a polished, formal tone. Be clear and concise.",
	"casual":       "Use a friendly, conversational tone without slang.",
	"concise":      "Be brief and to the point. Remove unnecessary words.",
	"friendly":     "Be warm and encouraging while remaining professional.",
}

const (
	rewriteTemperature = 0.2
	rewriteMaxTokens   = 300
)

// NormalizeStyle returns the style that will actually be applied for the
// given input: lowercased when supported, DefaultStyle otherwise.
func NormalizeStyle(style string) string {
	s := strings.ToLower(strings.TrimSpace(style))
	if _, ok := styleInstructions[s]; ok {
		return s
	}
	return DefaultStyle
}

// Styles lists the supported style names.
func Styles() []string {
	names := make([]string, 0, len(styleInstructions))
	for name := range styleInstructions {
		names = append(names, name)
	}
	return names
}

// Request describes one rewrite invocation.
type Request struct {
	Text              string
	Style             string
	ExtraInstructions string
}

// Rewriter rewrites text through a generation provider.
type Rewriter struct {
	provider llm.Provider
	model    string
}

// New constructs a rewriter. Unlike the analysis pipeline there is no
// offline mode here; a provider is required.
func New(provider llm.Provider, model string) (*Rewriter, error) {
	if provider == nil {
		return nil, errors.New("rewriter: generation provider is required")
	}
	return &Rewriter{provider: provider, model: model}, nil
}

// Rewrite returns the provider's rewritten text verbatim.
func (r *Rewriter) Rewrite(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", errors.New("rewriter: text is required")
	}

	instruction := styleInstructions[NormalizeStyle(req.Style)]
	if req.ExtraInstructions != "" {
		instruction += " " + req.ExtraInstructions
	}

	systemPrompt := fmt.Sprintf("%s Style: %s", baseSystemPrompt, instruction)
	userPrompt := "Rewrite the following text. Output only the rewritten text, no explanations.\n\nText: " + req.Text

	maxTokens := rewriteMaxTokens
	return r.provider.Generate(ctx, systemPrompt, userPrompt, llm.GenerationConfig{
		Model:       r.model,
		Temperature: rewriteTemperature,
		MaxTokens:   &maxTokens,
	})
}
