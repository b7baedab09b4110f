package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

var (
	ErrAINotConfigured = errors.New("gemini api key not configured")
	ErrInvalidAIJSON   = errors.New("model did not return valid json")
)

// GeminiService wraps a langchaingo model backed by Gemini. A service
// without a model reports itself as not configured.
type GeminiService struct {
	llm llms.Model
}

// NewGeminiService builds the Google AI client. An empty key yields an
// unconfigured service rather than an error.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return &GeminiService{}, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return NewGeminiServiceWithModel(llm), nil
}

func NewGeminiServiceWithModel(llm llms.Model) *GeminiService {
	return &GeminiService{llm: llm}
}

func (g *GeminiService) Configured() bool {
	return g != nil && g.llm != nil
}

// GenerateText sends a single-turn prompt and returns the first choice
// trimmed. An empty string means the model answered with nothing usable.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt)
}

// GenerateJSON asks for a JSON answer and decodes it into out. Markdown code
// fences around the payload are tolerated.
func (g *GeminiService) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	text, err := g.generate(ctx, prompt, llms.WithJSONMode())
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(StripCodeFence(text)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAIJSON, err)
	}
	return nil
}

func (g *GeminiService) generate(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	if !g.Configured() {
		return "", ErrAINotConfigured
	}

	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// StripCodeFence removes a surrounding ``` or ```json fence.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
