package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/daybook-app/apiserver/internal/store"
	"github.com/daybook-app/apiserver/types"
)

// In-memory repositories backing the handler tests. They mirror the
// scoping rules of the SQL implementations: operations on another
// user's rows report store.ErrNotFound.

type memUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return types.User{}, store.ErrEmailTaken
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memEntryRepo struct {
	nextID  int
	entries map[int]types.Entry
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{nextID: 1, entries: map[int]types.Entry{}}
}

func (r *memEntryRepo) ListByUser(ctx context.Context, userID int) ([]types.Entry, error) {
	entries := []types.Entry{}
	for _, entry := range r.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (r *memEntryRepo) ListByUserAndDateRange(ctx context.Context, userID int, start, end time.Time) ([]types.Entry, error) {
	entries := []types.Entry{}
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if entry.Date.Before(start) || !entry.Date.Before(end) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (r *memEntryRepo) Get(ctx context.Context, userID, id int) (types.Entry, error) {
	entry, ok := r.entries[id]
	if !ok || entry.UserID != userID {
		return types.Entry{}, store.ErrNotFound
	}
	return entry, nil
}

func (r *memEntryRepo) Create(ctx context.Context, entry types.Entry) (types.Entry, error) {
	entry.ID = r.nextID
	r.nextID++
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *memEntryRepo) Update(ctx context.Context, entry types.Entry) (types.Entry, error) {
	existing, ok := r.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return types.Entry{}, store.ErrNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *memEntryRepo) Delete(ctx context.Context, userID, id int) error {
	entry, ok := r.entries[id]
	if !ok || entry.UserID != userID {
		return store.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

type memAttachmentRepo struct {
	nextID      int
	attachments map[int]types.Attachment
}

func newMemAttachmentRepo() *memAttachmentRepo {
	return &memAttachmentRepo{nextID: 1, attachments: map[int]types.Attachment{}}
}

func (r *memAttachmentRepo) ListByEntry(ctx context.Context, entryID int) ([]types.Attachment, error) {
	attachments := []types.Attachment{}
	for _, attachment := range r.attachments {
		if attachment.EntryID == entryID {
			attachments = append(attachments, attachment)
		}
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].ID < attachments[j].ID })
	return attachments, nil
}

func (r *memAttachmentRepo) Get(ctx context.Context, id int) (types.Attachment, error) {
	attachment, ok := r.attachments[id]
	if !ok {
		return types.Attachment{}, store.ErrNotFound
	}
	return attachment, nil
}

func (r *memAttachmentRepo) Create(ctx context.Context, attachment types.Attachment) (types.Attachment, error) {
	attachment.ID = r.nextID
	r.nextID++
	attachment.CreatedAt = time.Now()
	r.attachments[attachment.ID] = attachment
	return attachment, nil
}

func (r *memAttachmentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.attachments[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.attachments, id)
	return nil
}
