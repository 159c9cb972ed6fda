package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	qb "github.com/riskibarqy/robo-companion/internal/platform/querybuilder"
)

const rawPayloadTable = "raw_payloads"

// Upserts are chunked so one statement stays well under the 65535 bind
// parameter limit.
const rawPayloadChunkSize = 500

type RawPayloadRepository struct {
	db *sqlx.DB
}

func NewRawPayloadRepository(db *sqlx.DB) *RawPayloadRepository {
	return &RawPayloadRepository{db: db}
}

type rawPayloadInsertModel struct {
	Source      string        `db:"source"`
	EntityType  string        `db:"entity_type"`
	EntityKey   string        `db:"entity_key"`
	ProgramID   sql.NullInt64 `db:"program_id"`
	Payload     string        `db:"payload"`
	PayloadHash string        `db:"payload_hash"`
	FetchedAt   time.Time     `db:"fetched_at"`
}

type rawPayloadStatsModel struct {
	Source      string    `db:"source"`
	Payloads    int64     `db:"payloads"`
	LastFetched time.Time `db:"last_fetched"`
}

// UpsertMany keeps the latest body per (source, entity_type, entity_key).
// Rows whose hash did not change only get fetched_at refreshed.
func (r *RawPayloadRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	rows := dedupePayloads(items)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(rows); start += rawPayloadChunkSize {
		end := min(start+rawPayloadChunkSize, len(rows))
		query, args, err := qb.InsertModels(rawPayloadTable, rows[start:end], `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    program_id = EXCLUDED.program_id,
    payload = CASE WHEN raw_payloads.payload_hash = EXCLUDED.payload_hash THEN raw_payloads.payload ELSE EXCLUDED.payload END,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = GREATEST(raw_payloads.fetched_at, EXCLUDED.fetched_at),
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert raw payloads query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw payloads rows=%d: %w", end-start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}
	return nil
}

func (r *RawPayloadRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(rawPayloadTable).
		Where(qb.Lt("fetched_at", cutoff.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete raw payloads query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete raw payloads before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted raw payload count: %w", err)
	}
	return deleted, nil
}

func (r *RawPayloadRepository) Stats(ctx context.Context) ([]rawdata.SourceStats, error) {
	query, args, err := qb.Select("source", "COUNT(1) AS payloads", "MAX(fetched_at) AS last_fetched").
		From(rawPayloadTable).
		GroupBy("source").
		OrderBy("source").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build raw payload stats query: %w", err)
	}

	var rows []rawPayloadStatsModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select raw payload stats: %w", err)
	}

	out := make([]rawdata.SourceStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, rawdata.SourceStats{
			Source:      row.Source,
			Payloads:    row.Payloads,
			LastFetched: row.LastFetched.UTC(),
		})
	}
	return out, nil
}

// dedupePayloads keeps the last occurrence of each conflict key. Postgres
// rejects an upsert that touches the same row twice.
func dedupePayloads(items []rawdata.Payload) []rawPayloadInsertModel {
	type conflictKey struct{ source, entityType, entityKey string }

	index := make(map[conflictKey]int, len(items))
	out := make([]rawPayloadInsertModel, 0, len(items))
	for _, item := range items {
		if item.EntityKey == "" {
			continue
		}
		row := rawPayloadInsertModel{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			ProgramID:   nullableInt64(item.ProgramID),
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt.UTC(),
		}
		key := conflictKey{item.Source, item.EntityType, item.EntityKey}
		if i, ok := index[key]; ok {
			out[i] = row
			continue
		}
		index[key] = len(out)
		out = append(out, row)
	}
	return out
}
