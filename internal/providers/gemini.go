package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	genai "google.golang.org/genai"
)

// Gemini implements the Analyzer interface for Google's Gemini API via the
// official genai SDK.
type Gemini struct {
	cli   *genai.Client
	model string
}

// NewGemini creates a new Gemini provider.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable is not set")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Analyze(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
		MaxOutputTokens:  int32(maxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: req.UserPrompt}}},
	}

	var resp Response
	err := retryWithBackoff(ctx, 3, func() error {
		result, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return classifyGenaiError(err)
		}

		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
			len(result.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("no content in response")
		}

		var content string
		for _, part := range result.Candidates[0].Content.Parts {
			content += part.Text
		}
		if content == "" {
			return fmt.Errorf("empty text content in API response")
		}

		tokens := 0
		if result.UsageMetadata != nil {
			tokens = int(result.UsageMetadata.TotalTokenCount)
		}

		resp = Response{Content: content, TokensUsed: tokens}
		return nil
	})

	return resp, err
}

func classifyGenaiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &rateLimitError{}
		case apiErr.Code == 401 || apiErr.Code == 403:
			return &authError{message: apiErr.Message}
		case apiErr.Code >= 500:
			return &serverError{statusCode: apiErr.Code, body: apiErr.Message}
		}
	}
	return fmt.Errorf("gemini request: %w", err)
}
