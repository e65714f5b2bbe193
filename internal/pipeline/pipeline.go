package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"document-qa/internal/chunker"
	"document-qa/internal/embedding"
	"document-qa/internal/extractor"
	"document-qa/internal/models"
	"document-qa/internal/ranker"
	"document-qa/internal/strategy"
	"document-qa/internal/summarizer"
)

// ErrExtractionFailed marks a document whose text could not be extracted.
// No record is created for such a document.
var ErrExtractionFailed = errors.New("document text extraction failed")

// Pipeline owns the ingestion and query flows. All model resources are
// injected once at construction and shared read-only across requests; the
// pipeline never mutates them.
type Pipeline struct {
	embedder    embedding.Embedder
	summarizer  summarizer.Summarizer
	strategies  *strategy.Registry
	chunkSize   int
	maxParallel int
}

func New(embedder embedding.Embedder, summ summarizer.Summarizer, strategies *strategy.Registry, chunkSize, maxParallel int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = models.DefaultChunkSize
	}
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &Pipeline{
		embedder:    embedder,
		summarizer:  summ,
		strategies:  strategies,
		chunkSize:   chunkSize,
		maxParallel: maxParallel,
	}
}

// Ingest extracts, chunks, embeds and summarizes one document. It is all or
// nothing: any stage failure returns an error and no record. Chunk embedding
// runs as a bounded-parallel map; results are gathered by chunk index so the
// embeddings slice always parallels the chunks slice.
func (p *Pipeline) Ingest(ctx context.Context, path, ext string) (*models.Record, error) {
	text := extractor.Extract(path, ext)
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrExtractionFailed, path)
	}

	chunks := chunker.Split(text, p.chunkSize)
	embeddings := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallel)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := p.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embedding chunk %d: %w", i, err)
			}
			embeddings[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Int("chunks", len(chunks)).Msg("Ingested document")
	return &models.Record{
		Summary:    summary,
		Chunks:     chunks,
		Embeddings: embeddings,
	}, nil
}

// Query answers a question against an ingested record. A record with no
// chunks yields the fixed no-document answer without touching any model.
// Otherwise the question is embedded, the most relevant chunk selected by
// cosine similarity, and the named strategy dispatched; unknown names fall
// back to the default strategy.
func (p *Pipeline) Query(ctx context.Context, rec *models.Record, question, strategyName string) (string, error) {
	if rec == nil || len(rec.Chunks) == 0 || len(rec.Embeddings) == 0 {
		return models.NoDocumentAnswer, nil
	}

	questionVec, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}

	best, err := ranker.Rank(questionVec, rec.Embeddings)
	if err != nil {
		return "", err
	}

	strat := p.strategies.ForName(strategyName)
	log.Debug().Str("strategy", strat.Name()).Int("chunk", best).Msg("Dispatching answer strategy")
	return strat.Answer(ctx, rec.Chunks[best], question)
}
