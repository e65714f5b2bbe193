package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"document-qa/internal/config"
)

// Embedder maps a text span to one fixed-length dense vector. The
// dimensionality is constant for a given instance. Implementations must be
// safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LLMEmbedder backs the Embedder contract with a langchaingo embedding model.
// Input longer than the model window is truncated rather than rejected.
type LLMEmbedder struct {
	embedder *embeddings.EmbedderImpl
	maxChars int
}

// NewEmbedder builds an embedder against the configured endpoint. Provider
// "openai" talks to any OpenAI-compatible server; everything else goes
// through ollama.
func NewEmbedder(llmConfig *config.LLMConfig, maxChars int) (*LLMEmbedder, error) {
	llm, err := newEmbedderClient(llmConfig)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding model %s: %w", llmConfig.Model, err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	return &LLMEmbedder{embedder: embedder, maxChars: maxChars}, nil
}

func newEmbedderClient(llmConfig *config.LLMConfig) (embeddings.EmbedderClient, error) {
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

func (e *LLMEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embedder.EmbedQuery(ctx, Truncate(text, e.maxChars))
}

// Truncate cuts content to at most maxChars at a word boundary. A single
// word longer than the budget is kept whole so short input never vanishes.
func Truncate(content string, maxChars int) string {
	if maxChars <= 0 || len(content) <= maxChars {
		return content
	}
	words := strings.Fields(content)
	var out strings.Builder
	for _, word := range words {
		if out.Len() > 0 && out.Len()+len(word)+1 > maxChars {
			break
		}
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(word)
	}
	return out.String()
}
