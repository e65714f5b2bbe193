package summarizer

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"

	"document-qa/internal/embedding"
	"document-qa/internal/llmservice"
	"document-qa/internal/models"
)

// Summarizer produces a short abstractive summary of a document.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// LLMSummarizer generates summaries through a chat model. Input longer than
// the model context budget is truncated first; the output length is bounded
// by the configured word range.
type LLMSummarizer struct {
	client   llmservice.Generator
	maxChars int
	minWords int
	maxWords int
}

func New(client llmservice.Generator, maxChars, minWords, maxWords int) *LLMSummarizer {
	return &LLMSummarizer{
		client:   client,
		maxChars: maxChars,
		minWords: minWords,
		maxWords: maxWords,
	}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("document text is not valid UTF-8")
	}
	prompt := fmt.Sprintf(models.SummaryPromptTemplate, s.minWords, s.maxWords, embedding.Truncate(text, s.maxChars))
	summary, err := s.client.Generate(ctx, prompt,
		llms.WithMinLength(s.minWords),
		llms.WithMaxLength(s.maxWords),
	)
	if err != nil {
		return "", fmt.Errorf("summarizing document: %w", err)
	}
	if summary == "" {
		return "", fmt.Errorf("summarizer returned empty output")
	}
	return summary, nil
}
