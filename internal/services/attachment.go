package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/storage"
	"github.com/daybook-app/apiserver/types"
	"github.com/google/uuid"
)

// AttachmentRepository defines persistence operations for attachment
// metadata.
type AttachmentRepository interface {
	ListByEntry(ctx context.Context, entryID int) ([]types.Attachment, error)
	Get(ctx context.Context, id int) (types.Attachment, error)
	Create(ctx context.Context, attachment types.Attachment) (types.Attachment, error)
	Delete(ctx context.Context, id int) error
}

// AttachmentService encapsulates the attachment lifecycle. Every
// operation resolves the parent entry through the entry repository scoped
// to the caller, so an attachment reachable only through another user's
// entry behaves as not found.
type AttachmentService struct {
	repo    AttachmentRepository
	entries EntryRepository
	storage *storage.Storage
}

func NewAttachmentService(repo AttachmentRepository, entries EntryRepository, objectStorage *storage.Storage) *AttachmentService {
	return &AttachmentService{
		repo:    repo,
		entries: entries,
		storage: objectStorage,
	}
}

// Upload stores the file bytes in object storage under a server-generated
// key and records the metadata. The caller must own the target entry.
func (s *AttachmentService) Upload(ctx context.Context, userID, entryID int, fileName, contentType string, file io.Reader, size int64) (types.Attachment, error) {
	if _, err := s.entries.Get(ctx, userID, entryID); err != nil {
		return types.Attachment{}, err
	}

	key := objectKey(fileName)
	if err := s.storage.Put(ctx, key, file, size, contentType); err != nil {
		return types.Attachment{}, fmt.Errorf("store object: %w", err)
	}

	attachment, err := s.repo.Create(ctx, types.Attachment{
		EntryID:  entryID,
		FileKey:  key,
		FileName: fileName,
		FileType: contentType,
	})
	if err != nil {
		// The metadata row is authoritative; without it the object is
		// unreachable, so remove it again.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Err(delErr).Str("key", key).Msg("orphaned object cleanup failed")
		}
		return types.Attachment{}, fmt.Errorf("create attachment record: %w", err)
	}
	return attachment, nil
}

// ListByEntry returns the metadata of all files attached to the entry,
// provided the caller owns it.
func (s *AttachmentService) ListByEntry(ctx context.Context, userID, entryID int) ([]types.Attachment, error) {
	if _, err := s.entries.Get(ctx, userID, entryID); err != nil {
		return nil, err
	}
	return s.repo.ListByEntry(ctx, entryID)
}

// Download opens the stored object for reading. The returned attachment
// carries the original file name for the Content-Disposition header.
func (s *AttachmentService) Download(ctx context.Context, userID, attachmentID int) (types.Attachment, io.ReadCloser, error) {
	attachment, err := s.get(ctx, userID, attachmentID)
	if err != nil {
		return types.Attachment{}, nil, err
	}

	reader, err := s.storage.Get(ctx, attachment.FileKey)
	if err != nil {
		return types.Attachment{}, nil, fmt.Errorf("open object: %w", err)
	}
	return attachment, reader, nil
}

// Delete removes the metadata record and then the stored object. The
// record removal is authoritative; an object-store failure afterwards is
// logged, not surfaced.
func (s *AttachmentService) Delete(ctx context.Context, userID, attachmentID int) error {
	attachment, err := s.get(ctx, userID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, attachment.ID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, attachment.FileKey); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", attachment.FileKey).Msg("object delete failed")
	}
	return nil
}

// get loads an attachment and verifies the caller owns its parent entry.
func (s *AttachmentService) get(ctx context.Context, userID, attachmentID int) (types.Attachment, error) {
	attachment, err := s.repo.Get(ctx, attachmentID)
	if err != nil {
		return types.Attachment{}, err
	}
	if _, err := s.entries.Get(ctx, userID, attachment.EntryID); err != nil {
		return types.Attachment{}, err
	}
	return attachment, nil
}

// objectKey builds a collision-free storage key. The client file name only
// contributes its sanitized base name; the uniqueness comes from the
// timestamp and random suffix.
func objectKey(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), suffix, base)
}
