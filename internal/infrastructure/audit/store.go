// Package audit persists comparison outcomes to a local sqlite database.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS comparisons (
	id              TEXT PRIMARY KEY,
	input_reference TEXT NOT NULL,
	canonical_name  TEXT NOT NULL,
	best_source     TEXT,
	best_price      TEXT,
	offer_count     INTEGER NOT NULL,
	sources_checked INTEGER NOT NULL,
	duration_ms     INTEGER NOT NULL,
	payload         TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at);
`

// Store is the audit/logging collaborator. Each recorded comparison gets a
// correlation id the caller can hand out.
type Store struct {
	conn   *sql.DB
	logger *zap.Logger
}

// NewStore opens (or creates) the audit database at path.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to open database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("audit: failed to create schema: %w", err)
	}
	return &Store{conn: conn, logger: logger}, nil
}

// Record durably stores a comparison outcome and returns its correlation id.
func (s *Store) Record(ctx context.Context, result *domain.ComparisonResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: nil result", domain.ErrPersistenceFailed)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	var bestSource, bestPrice string
	if result.BestBuy != nil {
		bestSource = result.BestBuy.SourceKey
		bestPrice = result.BestBuy.EffectivePrice.String()
	}

	id := uuid.NewString()
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO comparisons
		 (id, input_reference, canonical_name, best_source, best_price,
		  offer_count, sources_checked, duration_ms, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		result.Signature.InputReference,
		result.Signature.CanonicalName,
		bestSource,
		bestPrice,
		len(result.Offers),
		result.SourcesChecked,
		result.DurationMs,
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	s.logger.Debug("comparison recorded", zap.String("id", id))
	return id, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
