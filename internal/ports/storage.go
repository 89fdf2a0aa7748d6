// Package ports defines the interfaces between the application layer
// and external infrastructure (storage, MCP).
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/mvidal/spur/internal/domain"
)

// ErrNoState is returned by LoadRaw when nothing has been persisted yet.
var ErrNoState = errors.New("no persisted state")

// BucketRepository persists the serialized bucket mapping under a
// single key. This is a driven port (implemented by adapters).
type BucketRepository interface {
	// LoadRaw returns the stored serialization, or ErrNoState when no
	// state has ever been saved.
	LoadRaw(ctx context.Context) (string, error)

	// SaveRaw stores the serialization, replacing any previous value.
	SaveRaw(ctx context.Context, data string) error
}

// PickRepository persists pick history.
type PickRepository interface {
	// Save appends a pick record.
	Save(ctx context.Context, pick *domain.Pick) error

	// MarkCompleted flags a pick whose countdown ran to the end.
	MarkCompleted(ctx context.Context, id string) error

	// FindRecent returns up to limit picks, most recent first.
	FindRecent(ctx context.Context, limit int) ([]*domain.Pick, error)

	// FindSince returns all picks made at or after the given time.
	FindSince(ctx context.Context, since time.Time) ([]*domain.Pick, error)

	// Search returns picks whose activity label fuzzy-matches the query,
	// best match first.
	Search(ctx context.Context, query string, limit int) ([]*domain.Pick, error)

	// CountCompleted returns total picks and how many were completed.
	CountCompleted(ctx context.Context) (total, completed int, err error)
}

// Storage is the combined repository interface.
type Storage interface {
	// Buckets provides access to the persisted bucket mapping.
	Buckets() BucketRepository

	// Picks provides access to pick history.
	Picks() PickRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
