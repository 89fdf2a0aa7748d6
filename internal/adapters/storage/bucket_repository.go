package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvidal/spur/internal/ports"
)

// bucketsKey is the single state row holding the serialized mapping.
const bucketsKey = "buckets"

// bucketRepository implements ports.BucketRepository using the state
// key-value table.
type bucketRepository struct {
	db *sql.DB
}

func newBucketRepository(db *sql.DB) ports.BucketRepository {
	return &bucketRepository{db: db}
}

// LoadRaw returns the stored bucket serialization.
func (r *bucketRepository) LoadRaw(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM state WHERE key = ?`, bucketsKey).Scan(&value)

	if err == sql.ErrNoRows {
		return "", ports.ErrNoState
	}
	if err != nil {
		return "", fmt.Errorf("failed to load state: %w", err)
	}
	return value, nil
}

// SaveRaw stores the bucket serialization, replacing any previous value.
func (r *bucketRepository) SaveRaw(ctx context.Context, data string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, bucketsKey, data, time.Now())

	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
