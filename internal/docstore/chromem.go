package docstore

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"document-qa/internal/helper"
	"document-qa/internal/models"
)

const (
	compress  = false
	metaDocID = "meta"
)

// ChromemStore persists records in an embedded chromem-go database on disk,
// one collection per document. Each chunk is stored with its embedding under
// an index-keyed id; the summary and chunk count live on a meta entry, so a
// record is reassembled in chunk order on read.
type ChromemStore struct {
	db *chromem.DB
}

func NewChromem(dbPath string) (*ChromemStore, error) {
	if err := helper.CreateFolder(dbPath); err != nil {
		return nil, err
	}
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}
	return &ChromemStore{db: db}, nil
}

func (s *ChromemStore) Put(ctx context.Context, rec *models.Record) (string, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return "", err
	}
	collection, err := s.db.GetOrCreateCollection(collectionName(id), nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create collection: %v", err)
	}

	docs := make([]chromem.Document, 0, len(rec.Chunks)+1)
	for i, chunk := range rec.Chunks {
		docs = append(docs, chromem.Document{
			ID:        chunkDocID(i),
			Content:   chunk,
			Metadata:  map[string]string{"chunk_index": strconv.Itoa(i)},
			Embedding: rec.Embeddings[i],
		})
	}
	// The meta entry is never queried by similarity; its embedding is a
	// unit vector of the chunk dimensionality to satisfy the store.
	docs = append(docs, chromem.Document{
		ID:      metaDocID,
		Content: rec.Summary,
		Metadata: map[string]string{
			"chunks": strconv.Itoa(len(rec.Chunks)),
		},
		Embedding: unitVector(rec.Embeddings),
	})

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return "", fmt.Errorf("failed to add documents: %v", err)
	}
	return id, nil
}

func (s *ChromemStore) Get(ctx context.Context, id string) (*models.Record, error) {
	collection := s.db.GetCollection(collectionName(id), nil)
	if collection == nil {
		return nil, ErrNotFound
	}
	meta, err := collection.GetByID(ctx, metaDocID)
	if err != nil {
		return nil, ErrNotFound
	}
	count, err := strconv.Atoi(meta.Metadata["chunks"])
	if err != nil {
		return nil, fmt.Errorf("corrupt chunk count for document %s: %v", id, err)
	}

	rec := &models.Record{
		Summary:    meta.Content,
		Chunks:     make([]string, count),
		Embeddings: make([][]float32, count),
	}
	for i := 0; i < count; i++ {
		doc, err := collection.GetByID(ctx, chunkDocID(i))
		if err != nil {
			return nil, fmt.Errorf("missing chunk %d for document %s: %v", i, id, err)
		}
		rec.Chunks[i] = doc.Content
		rec.Embeddings[i] = doc.Embedding
	}
	return rec, nil
}

func (s *ChromemStore) Delete(_ context.Context, id string) error {
	name := collectionName(id)
	if s.db.GetCollection(name, nil) == nil {
		return ErrNotFound
	}
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("failed to drop collection: %v", err)
	}
	return nil
}

func (s *ChromemStore) Close() error { return nil }

func unitVector(embeddings [][]float32) []float32 {
	dim := 1
	if len(embeddings) > 0 && len(embeddings[0]) > 0 {
		dim = len(embeddings[0])
	}
	vec := make([]float32, dim)
	vec[0] = 1
	return vec
}

func collectionName(id string) string { return "doc-" + id }

func chunkDocID(i int) string { return "chunk-" + strconv.Itoa(i) }
