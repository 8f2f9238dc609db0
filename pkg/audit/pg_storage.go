package audit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStorage persists audit records to PostgreSQL. The table is
// append-only: this type issues INSERTs and nothing else, and the
// schema grants the application role no UPDATE or DELETE on it.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage creates audit storage over the given connection pool.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

const insertRecordSQL = `
	INSERT INTO audit_records
		(id, actor_id, actor_role, action, target_type, target_id,
		 country_code, previous_value, new_value, decision, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Store appends a single record.
func (s *PgStorage) Store(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx, insertRecordSQL,
		rec.ID, rec.ActorID, rec.ActorRole, rec.Action, rec.TargetType, rec.TargetID,
		rec.CountryCode, rec.PreviousValue, rec.NewValue, rec.Decision, rec.CreatedAt)
	return err
}

// StoreBatch appends records atomically inside one transaction, for use
// behind an AsyncWriter.
func (s *PgStorage) StoreBatch(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(insertRecordSQL,
			rec.ID, rec.ActorID, rec.ActorRole, rec.Action, rec.TargetType, rec.TargetID,
			rec.CountryCode, rec.PreviousValue, rec.NewValue, rec.Decision, rec.CreatedAt)
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range recs {
			if _, err := results.Exec(); err != nil {
				return err
			}
		}
		return nil
	})
}
