package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"document-qa/internal/config"
	"document-qa/internal/helper"
	"document-qa/internal/models"
)

type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	ID            string `bun:"id,pk"`
	Summary       string `bun:"summary,notnull"`
}

type chunkRow struct {
	bun.BaseModel `bun:"table:document_chunks,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement"`
	DocumentID    string    `bun:"document_id,notnull"`
	ChunkIndex    int       `bun:"chunk_index,notnull"`
	Content       string    `bun:"content,notnull"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(768)"`
}

// PostgresStore persists records in Postgres with pgvector embeddings. A
// record is one documents row plus its document_chunks rows, written in a
// single transaction so readers never see a partial record.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*PostgresStore, error) {
	dsn := cfg.URL + "?sslmode=disable"
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Key)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	s := &PostgresStore{db: db}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*documentRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := s.db.NewCreateTable().Model((*chunkRow)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *PostgresStore) Put(ctx context.Context, rec *models.Record) (string, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return "", err
	}
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		doc := &documentRow{ID: id, Summary: rec.Summary}
		if _, err := tx.NewInsert().Model(doc).Exec(ctx); err != nil {
			return err
		}
		if len(rec.Chunks) == 0 {
			return nil
		}
		rows := make([]chunkRow, len(rec.Chunks))
		for i, chunk := range rec.Chunks {
			rows[i] = chunkRow{
				DocumentID: id,
				ChunkIndex: i,
				Content:    chunk,
				Embedding:  rec.Embeddings[i],
			}
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("storing document: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Record, error) {
	var doc documentRow
	err := s.db.NewSelect().Model(&doc).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []chunkRow
	err = s.db.NewSelect().
		Model(&rows).
		Where("document_id = ?", id).
		Order("chunk_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	rec := &models.Record{
		Summary:    doc.Summary,
		Chunks:     make([]string, len(rows)),
		Embeddings: make([][]float32, len(rows)),
	}
	for i, row := range rows {
		rec.Chunks[i] = row.Content
		rec.Embeddings[i] = row.Embedding
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*chunkRow)(nil)).Where("document_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().Model((*documentRow)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *PostgresStore) Close() error { return s.db.Close() }
