package strategy

import (
	"context"
	"fmt"
	"strings"

	"document-qa/internal/embedding"
	"document-qa/internal/models"
	"document-qa/internal/ranker"
)

// Extractive returns the context sentence most similar to the question,
// verbatim, using a sentence-level embedder. Sentences are split on the
// literal ". " separator; a final sentence without a trailing period is kept
// as the last segment. The crude split is intentional and must not be
// replaced with a smarter tokenizer: downstream behavior depends on it.
type Extractive struct {
	embedder embedding.Embedder
}

func NewExtractive(embedder embedding.Embedder) *Extractive {
	return &Extractive{embedder: embedder}
}

func (s *Extractive) Name() string { return models.StrategyExtractive }

func (s *Extractive) Answer(ctx context.Context, contextText, question string) (string, error) {
	sentences := strings.Split(contextText, ". ")

	questionVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}

	vectors := make([][]float32, len(sentences))
	for i, sentence := range sentences {
		vec, err := s.embedder.Embed(ctx, sentence)
		if err != nil {
			return "", fmt.Errorf("embedding sentence %d: %w", i, err)
		}
		vectors[i] = vec
	}

	best, err := ranker.Rank(questionVec, vectors)
	if err != nil {
		return "", err
	}
	return sentences[best], nil
}
