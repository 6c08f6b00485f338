package providers

import (
	"context"
	"fmt"
)

const defaultMaxTokens = 4096

// Request contains the prompts sent to an LLM for analysis.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw model output.
type Response struct {
	Content    string
	TokensUsed int
}

// Analyzer is the provider abstraction interface.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider by name.
func New(ctx context.Context, provider, model string) (Analyzer, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(ctx, model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
