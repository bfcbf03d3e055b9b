package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/daybook-app/apiserver/types"
)

// AttachmentRepository handles persistence for attachment metadata.
// Ownership is enforced one level up: the service resolves the parent
// entry through the entry repository before touching attachments.
type AttachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) ListByEntry(ctx context.Context, entryID int) ([]types.Attachment, error) {
	const query = `
		SELECT id, entry_id, file_key, file_name, file_type, created_at, updated_at
		FROM attachments
		WHERE entry_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make([]types.Attachment, 0)
	for rows.Next() {
		var attachment types.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.EntryID,
			&attachment.FileKey,
			&attachment.FileName,
			&attachment.FileType,
			&attachment.CreatedAt,
			&attachment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *AttachmentRepository) Get(ctx context.Context, id int) (types.Attachment, error) {
	const query = `
		SELECT id, entry_id, file_key, file_name, file_type, created_at, updated_at
		FROM attachments
		WHERE id = $1`
	var attachment types.Attachment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&attachment.ID,
		&attachment.EntryID,
		&attachment.FileKey,
		&attachment.FileName,
		&attachment.FileType,
		&attachment.CreatedAt,
		&attachment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Attachment{}, ErrNotFound
		}
		return types.Attachment{}, err
	}
	return attachment, nil
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment types.Attachment) (types.Attachment, error) {
	now := time.Now()
	attachment.CreatedAt = now
	attachment.UpdatedAt = now

	const query = `
		INSERT INTO attachments (entry_id, file_key, file_name, file_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		attachment.EntryID,
		attachment.FileKey,
		attachment.FileName,
		attachment.FileType,
		attachment.CreatedAt,
		attachment.UpdatedAt,
	).Scan(&attachment.ID); err != nil {
		return types.Attachment{}, err
	}
	return attachment, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM attachments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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
