package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/mvidal/spur/internal/domain"
	"github.com/mvidal/spur/internal/ports"
)

// pickRepository implements ports.PickRepository using SQLite.
type pickRepository struct {
	db *sql.DB
}

func newPickRepository(db *sql.DB) ports.PickRepository {
	return &pickRepository{db: db}
}

// Save appends a pick record.
func (r *pickRepository) Save(ctx context.Context, pick *domain.Pick) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO picks (id, minutes, activity, picked_at, completed)
		VALUES (?, ?, ?, ?, ?)
	`, pick.ID, pick.Minutes, pick.Activity, pick.PickedAt, pick.Completed)

	if err != nil {
		return fmt.Errorf("failed to save pick: %w", err)
	}
	return nil
}

// MarkCompleted flags a pick whose countdown ran to the end.
func (r *pickRepository) MarkCompleted(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE picks SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark pick completed: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPickNotFound
	}
	return nil
}

// FindRecent returns up to limit picks, most recent first.
func (r *pickRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Pick, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, minutes, activity, picked_at, completed
		FROM picks
		ORDER BY picked_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanPicks(rows)
}

// FindSince returns all picks made at or after the given time.
func (r *pickRepository) FindSince(ctx context.Context, since time.Time) ([]*domain.Pick, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, minutes, activity, picked_at, completed
		FROM picks
		WHERE picked_at >= ?
		ORDER BY picked_at DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanPicks(rows)
}

// Search returns picks whose activity label fuzzy-matches the query,
// best match first. Matching happens in memory over the most recent
// rows; the history table stays small enough for that.
func (r *pickRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Pick, error) {
	picks, err := r.FindRecent(ctx, 500)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(picks))
	for i, p := range picks {
		labels[i] = p.Activity
	}

	matches := fuzzy.Find(query, labels)

	var result []*domain.Pick
	for _, match := range matches {
		if match.Score > 0 {
			result = append(result, picks[match.Index])
		}
		if len(result) >= limit {
			break
		}
	}

	return result, nil
}

// CountCompleted returns total picks and how many were completed.
func (r *pickRepository) CountCompleted(ctx context.Context) (int, int, error) {
	var total, completed int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM picks
	`).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return total, completed, nil
}

// scanPicks scans multiple pick rows.
func (r *pickRepository) scanPicks(rows *sql.Rows) ([]*domain.Pick, error) {
	var picks []*domain.Pick

	for rows.Next() {
		var pick domain.Pick
		var completed int

		err := rows.Scan(&pick.ID, &pick.Minutes, &pick.Activity, &pick.PickedAt, &completed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}

		pick.Completed = completed != 0
		picks = append(picks, &pick)
	}

	return picks, rows.Err()
}
