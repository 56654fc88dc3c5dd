package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const createSimulationsTable = `CREATE TABLE IF NOT EXISTS simulations (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	client_id   TEXT NOT NULL DEFAULT '',
	property_id TEXT NOT NULL DEFAULT '',
	record      JSONB NOT NULL
)`

// PostgresStore keeps records in a simulations table, one JSONB document per
// row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens dsn and ensures the simulations table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return newPostgresStore(ctx, db)
}

func newPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSimulationsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create simulations table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save stores record, replacing any record with the same ID.
func (p *PostgresStore) Save(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", record.ID, err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO simulations (id, created_at, client_id, property_id, record)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record`,
		record.ID, record.CreatedAt, record.ClientID, record.PropertyID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return nil
}

// Get returns the record with the given ID.
func (p *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, `SELECT record FROM simulations WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return record, nil
}

// List returns all records ordered by creation time.
func (p *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT record FROM simulations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var record Record
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Delete removes the record with the given ID.
func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database handle.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
