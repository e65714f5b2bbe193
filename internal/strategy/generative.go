package strategy

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"document-qa/internal/llmservice"
	"document-qa/internal/models"
)

// GenerativeA is the default strategy: a seq2seq-style bounded completion
// over a "question: ... context: ..." prompt with a fixed candidate count.
type GenerativeA struct {
	client     llmservice.Generator
	maxTokens  int
	candidates int
}

func NewGenerativeA(client llmservice.Generator, maxTokens, candidates int) *GenerativeA {
	return &GenerativeA{client: client, maxTokens: maxTokens, candidates: candidates}
}

func (s *GenerativeA) Name() string { return models.StrategyGenerativeA }

func (s *GenerativeA) Answer(ctx context.Context, contextText, question string) (string, error) {
	prompt := fmt.Sprintf(models.GenerativeAPromptTemplate, question, contextText)
	answer, err := s.client.Generate(ctx, prompt,
		llms.WithMaxTokens(s.maxTokens),
		llms.WithCandidateCount(s.candidates),
	)
	if err != nil {
		return "", fmt.Errorf("generating answer with %s: %w", s.Name(), err)
	}
	return answer, nil
}

// GenerativeB is a causal continuation over a
// "Context: ...\nQuestion: ...\nAnswer:" prompt with a fixed token bound.
type GenerativeB struct {
	client    llmservice.Generator
	maxTokens int
}

func NewGenerativeB(client llmservice.Generator, maxTokens int) *GenerativeB {
	return &GenerativeB{client: client, maxTokens: maxTokens}
}

func (s *GenerativeB) Name() string { return models.StrategyGenerativeB }

func (s *GenerativeB) Answer(ctx context.Context, contextText, question string) (string, error) {
	prompt := fmt.Sprintf(models.GenerativeBPromptTemplate, contextText, question)
	answer, err := s.client.Generate(ctx, prompt, llms.WithMaxTokens(s.maxTokens))
	if err != nil {
		return "", fmt.Errorf("generating answer with %s: %w", s.Name(), err)
	}
	return answer, nil
}
