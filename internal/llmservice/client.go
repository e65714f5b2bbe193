package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"document-qa/internal/config"
)

// Generator produces a bounded text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error)
}

// Client wraps one langchaingo chat model. Construct it once at startup and
// share it across requests; it holds no per-request state.
type Client struct {
	llm   llms.Model
	model string
}

func NewClient(llmConfig *config.LLMConfig) (*Client, error) {
	llm, err := newModel(llmConfig)
	if err != nil {
		return nil, fmt.Errorf("initializing model %s: %w", llmConfig.Model, err)
	}
	return &Client{llm: llm, model: llmConfig.Model}, nil
}

func newModel(llmConfig *config.LLMConfig) (llms.Model, error) {
	if llmConfig.Provider == "openai" {
		return openai.New(
			openai.WithBaseURL(llmConfig.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		)
	}
	return ollama.New(
		ollama.WithServerURL(llmConfig.BaseURL),
		ollama.WithModel(llmConfig.Model),
	)
}

// Generate sends a single human message and returns the first choice as
// plain text. The backend strips its own special tokens.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	log.Debug().Str("model", c.model).Int("prompt_chars", len(prompt)).Msg("Generating content")

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", c.model)
	}
	return strings.TrimSpace(res.Choices[0].Content), nil
}
