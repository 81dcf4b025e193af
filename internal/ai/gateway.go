// Package ai provides a provider-agnostic text generation gateway with an
// ordered fallback chain across providers.
package ai

import "context"

// GenerateRequest is the input to a text generation call.
type GenerateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// GenerateResponse is the output of a text generation call.
type GenerateResponse struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r GenerateResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Provider is the interface all text generation providers must implement.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	HealthCheck(ctx context.Context) error
}
