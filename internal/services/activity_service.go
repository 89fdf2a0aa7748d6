// Package services implements the application layer (use cases) on top
// of the domain types and the storage ports.
package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mvidal/spur/internal/domain"
	"github.com/mvidal/spur/internal/logger"
	"github.com/mvidal/spur/internal/ports"
)

// ActivityService owns the in-memory bucket mapping and keeps it in
// sync with storage. All mutations go through here: mutate in memory,
// then persist best-effort. Persistence failures are logged and
// swallowed; there is no recovery path for a local single-writer store,
// so the in-memory state simply stays authoritative for the session.
type ActivityService struct {
	storage ports.Storage
	buckets domain.Buckets
	rng     *rand.Rand
}

// NewActivityService creates a service with the default bucket set.
// Call Load to replace it with persisted state.
func NewActivityService(storage ports.Storage) *ActivityService {
	return &ActivityService{
		storage: storage,
		buckets: domain.DefaultBuckets(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load reads the persisted bucket mapping. Absent or corrupt state
// falls back to the built-in defaults without error.
func (s *ActivityService) Load(ctx context.Context) {
	raw, err := s.storage.Buckets().LoadRaw(ctx)
	if err != nil {
		if err != ports.ErrNoState {
			logger.Warn("failed to read persisted buckets, using defaults", "err", err)
		}
		s.buckets = domain.DefaultBuckets()
		return
	}

	parsed, err := domain.ParseStored(raw)
	if err != nil {
		logger.Warn("persisted buckets are corrupt, using defaults", "err", err)
		s.buckets = domain.DefaultBuckets()
		return
	}
	s.buckets = parsed
}

// persist writes the current mapping to storage. Best-effort: a full
// disk or unwritable database must not take the application down.
func (s *ActivityService) persist(ctx context.Context) {
	if err := s.storage.Buckets().SaveRaw(ctx, s.buckets.Export()); err != nil {
		logger.Warn("failed to persist buckets", "err", err)
	}
}

// Buckets returns the live bucket mapping. Callers treat it as
// read-only; mutations go through the service methods.
func (s *ActivityService) Buckets() domain.Buckets {
	return s.buckets
}

// AddBucket inserts a new duration bucket and persists.
func (s *ActivityService) AddBucket(ctx context.Context, minutes int) error {
	if err := s.buckets.AddBucket(minutes); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// DeleteBucket removes a bucket and persists. The caller must have
// confirmed the deletion with the user.
func (s *ActivityService) DeleteBucket(ctx context.Context, minutes int) error {
	if err := s.buckets.DeleteBucket(minutes); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// AddActivity appends a placeholder activity to a bucket and persists.
func (s *ActivityService) AddActivity(ctx context.Context, minutes int) error {
	return s.AddActivityLabel(ctx, minutes, domain.PlaceholderLabel)
}

// AddActivityLabel appends an activity with the given label and persists.
func (s *ActivityService) AddActivityLabel(ctx context.Context, minutes int, label string) error {
	if err := s.buckets.AddActivityLabel(minutes, label); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// UpdateActivity replaces an activity label and persists. Out-of-range
// indexes are ignored.
func (s *ActivityService) UpdateActivity(ctx context.Context, minutes, index int, label string) {
	s.buckets.UpdateActivity(minutes, index, label)
	s.persist(ctx)
}

// DeleteActivity removes an activity and persists.
func (s *ActivityService) DeleteActivity(ctx context.Context, minutes, index int) error {
	if err := s.buckets.DeleteActivity(minutes, index); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Pick selects one activity uniformly at random from the named bucket
// and records it in history. Recording is best-effort.
func (s *ActivityService) Pick(ctx context.Context, minutes int) (*domain.Pick, error) {
	activities, ok := s.buckets[minutes]
	if !ok {
		return nil, domain.ErrBucketNotFound
	}
	if len(activities) == 0 {
		return nil, domain.ErrEmptyBucket
	}

	pick := domain.NewPick(minutes, activities[s.rng.Intn(len(activities))])
	if err := s.storage.Picks().Save(ctx, pick); err != nil {
		logger.Warn("failed to record pick", "err", err)
	}
	return pick, nil
}

// CompletePick marks a pick whose countdown ran to the end.
// Best-effort like all history writes.
func (s *ActivityService) CompletePick(ctx context.Context, id string) {
	if err := s.storage.Picks().MarkCompleted(ctx, id); err != nil {
		logger.Warn("failed to mark pick completed", "err", err)
	}
}

// History returns recent picks, most recent first.
func (s *ActivityService) History(ctx context.Context, limit int) ([]*domain.Pick, error) {
	picks, err := s.storage.Picks().FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick history: %w", err)
	}
	return picks, nil
}

// HistorySince returns all picks made at or after the given time.
func (s *ActivityService) HistorySince(ctx context.Context, since time.Time) ([]*domain.Pick, error) {
	picks, err := s.storage.Picks().FindSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick history: %w", err)
	}
	return picks, nil
}

// SearchHistory returns picks whose activity label fuzzy-matches the
// query, best match first.
func (s *ActivityService) SearchHistory(ctx context.Context, query string, limit int) ([]*domain.Pick, error) {
	picks, err := s.storage.Picks().Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search pick history: %w", err)
	}
	return picks, nil
}

// HistoryStats returns total and completed pick counts.
func (s *ActivityService) HistoryStats(ctx context.Context) (total, completed int, err error) {
	total, completed, err = s.storage.Picks().CountCompleted(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return total, completed, nil
}

// Export serializes the current mapping deterministically.
func (s *ActivityService) Export() string {
	return s.buckets.Export()
}

// ParseImport validates import text without touching live state.
func (s *ActivityService) ParseImport(text string) (domain.Buckets, error) {
	return domain.ParseImport(text)
}

// Replace discards the current mapping wholesale and persists the given
// one. This is the commit half of an import; the caller must have
// validated the data and confirmed with the user.
func (s *ActivityService) Replace(ctx context.Context, buckets domain.Buckets) {
	s.buckets = buckets.Clone()
	s.persist(ctx)
}

// Reset restores the built-in default bucket set and persists. The
// caller must have confirmed with the user.
func (s *ActivityService) Reset(ctx context.Context) {
	s.buckets = domain.DefaultBuckets()
	s.persist(ctx)
}

// Ensure ActivityService satisfies the MCP provider port.
var _ ports.ActivityProvider = (*ActivityService)(nil)
