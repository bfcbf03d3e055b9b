package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/daybook-app/apiserver/types"
)

// EntryRepository handles persistence for journal entries. Every lookup
// and mutation is keyed by (id, user_id) so one user's entries are
// unreachable through another user's requests.
type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID int) ([]types.Entry, error) {
	const query = `
		SELECT id, user_id, title, content, category, date, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.Entry, 0)
	for rows.Next() {
		var entry types.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.Category,
			&entry.Date,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserAndDateRange returns the user's entries with date in
// [start, end), in insertion order.
func (r *EntryRepository) ListByUserAndDateRange(ctx context.Context, userID int, start, end time.Time) ([]types.Entry, error) {
	const query = `
		SELECT id, user_id, title, content, category, date, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.Entry, 0)
	for rows.Next() {
		var entry types.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.Category,
			&entry.Date,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *EntryRepository) Get(ctx context.Context, userID, id int) (types.Entry, error) {
	const query = `
		SELECT id, user_id, title, content, category, date, created_at, updated_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2`
	var entry types.Entry
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Category,
		&entry.Date,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Entry{}, ErrNotFound
		}
		return types.Entry{}, err
	}
	return entry, nil
}

func (r *EntryRepository) Create(ctx context.Context, entry types.Entry) (types.Entry, error) {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `
		INSERT INTO journal_entries (user_id, title, content, category, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Category,
		entry.Date,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID); err != nil {
		return types.Entry{}, err
	}
	return entry, nil
}

func (r *EntryRepository) Update(ctx context.Context, entry types.Entry) (types.Entry, error) {
	entry.UpdatedAt = time.Now()

	const query = `
		UPDATE journal_entries
		SET title = $1,
			content = $2,
			category = $3,
			date = $4,
			updated_at = $5
		WHERE id = $6 AND user_id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		entry.Title,
		entry.Content,
		entry.Category,
		entry.Date,
		entry.UpdatedAt,
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return types.Entry{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Entry{}, err
	}
	if affected == 0 {
		return types.Entry{}, ErrNotFound
	}
	return entry, nil
}

func (r *EntryRepository) Delete(ctx context.Context, userID, id int) error {
	const query = `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
