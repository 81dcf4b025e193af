package ai

import "context"

// MockProvider is a test double for text generation providers.
type MockProvider struct {
	Response    string
	Err         error
	LastRequest *GenerateRequest // captures the last request for inspection
}

// NewMockProvider creates a MockProvider that returns the given text.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

func (m *MockProvider) Generate(_ context.Context, req GenerateRequest) (GenerateResponse, error) {
	m.LastRequest = &req
	if m.Err != nil {
		return GenerateResponse{}, m.Err
	}
	return GenerateResponse{
		Text:         m.Response,
		Model:        "mock",
		InputTokens:  len(req.Prompt) / 4,
		OutputTokens: len(m.Response),
	}, nil
}

func (m *MockProvider) HealthCheck(_ context.Context) error {
	return m.Err
}
