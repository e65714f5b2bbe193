package docstore

import (
	"context"
	"errors"
	"fmt"

	"document-qa/internal/config"
	"document-qa/internal/models"
)

// ErrNotFound is returned when no record exists under the requested id.
var ErrNotFound = errors.New("document not found")

// Store keeps ingested document records behind opaque identifiers. Records
// are written whole: a Get never observes a partially written record, and a
// Put is visible to every subsequent Get of the returned id.
type Store interface {
	Put(ctx context.Context, rec *models.Record) (string, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open builds the store selected by cfg.Type: "memory" (default),
// "chromem" or "postgres".
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemory(), nil
	case "chromem":
		return NewChromem(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, &cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
