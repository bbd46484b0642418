package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/flowgen/internal/db"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// Store manages persistence of generated flowcharts.
type Store struct {
	db *db.DB
}

// NewStore creates a new history store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save stores rec, assigning an id and timestamp when missing.
func (s *Store) Save(ctx context.Context, rec Record) (*Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, grammar, prompt, direction, complexity, code, model, input_tokens, output_tokens, cost_usd, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Grammar), rec.Prompt, string(rec.Direction), string(rec.Complexity), rec.Code, rec.Model,
		rec.InputTokens, rec.OutputTokens, rec.CostUSD, rec.LatencyMS, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting generation: %w", err)
	}
	return &rec, nil
}

// Record implements flowchart.Recorder.
func (s *Store) Record(ctx context.Context, res *flowchart.Result) error {
	_, err := s.Save(ctx, FromResult(res))
	return err
}

const selectColumns = `SELECT id, grammar, prompt, direction, complexity, code, model, input_tokens, output_tokens, cost_usd, latency_ms, created_at FROM generations`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Grammar, &r.Prompt, &r.Direction, &r.Complexity, &r.Code, &r.Model,
		&r.InputTokens, &r.OutputTokens, &r.CostUSD, &r.LatencyMS, &r.CreatedAt)
	return r, err
}

// Get retrieves a generation by its id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting generation: %w", err)
	}
	return &r, nil
}

// List returns generations matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := selectColumns + ` WHERE 1=1`
	args := []interface{}{}

	if filter.Grammar != "" {
		query += " AND grammar = ?"
		args = append(args, string(filter.Grammar))
	}

	query += " ORDER BY created_at DESC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	query += " LIMIT ?"
	args = append(args, limit)
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
