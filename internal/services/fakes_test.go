package services

import (
	"context"
	"time"

	"github.com/daybook-app/apiserver/internal/store"
	"github.com/daybook-app/apiserver/types"
)

// In-memory repositories backing the service tests.

func entryFor(userID int) types.Entry {
	return types.Entry{
		UserID:   userID,
		Title:    "T",
		Content:  "C",
		Category: "Work",
		Date:     time.Now(),
	}
}

type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrEmailTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Email == user.Email {
			return types.User{}, store.ErrEmailTaken
		}
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeEntryRepo struct {
	nextID  int
	entries map[int]types.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{nextID: 1, entries: map[int]types.Entry{}}
}

func (f *fakeEntryRepo) ListByUser(ctx context.Context, userID int) ([]types.Entry, error) {
	entries := make([]types.Entry, 0)
	for id := 1; id < f.nextID; id++ {
		if entry, ok := f.entries[id]; ok && entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeEntryRepo) ListByUserAndDateRange(ctx context.Context, userID int, start, end time.Time) ([]types.Entry, error) {
	entries := make([]types.Entry, 0)
	for id := 1; id < f.nextID; id++ {
		entry, ok := f.entries[id]
		if !ok || entry.UserID != userID {
			continue
		}
		if !entry.Date.Before(start) && entry.Date.Before(end) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeEntryRepo) Get(ctx context.Context, userID, id int) (types.Entry, error) {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return types.Entry{}, store.ErrNotFound
	}
	return entry, nil
}

func (f *fakeEntryRepo) Create(ctx context.Context, entry types.Entry) (types.Entry, error) {
	entry.ID = f.nextID
	f.nextID++
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, entry types.Entry) (types.Entry, error) {
	existing, ok := f.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return types.Entry{}, store.ErrNotFound
	}
	entry.UpdatedAt = time.Now()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, userID, id int) error {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

type fakeAttachmentRepo struct {
	nextID      int
	attachments map[int]types.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{nextID: 1, attachments: map[int]types.Attachment{}}
}

func (f *fakeAttachmentRepo) ListByEntry(ctx context.Context, entryID int) ([]types.Attachment, error) {
	attachments := make([]types.Attachment, 0)
	for id := 1; id < f.nextID; id++ {
		if attachment, ok := f.attachments[id]; ok && attachment.EntryID == entryID {
			attachments = append(attachments, attachment)
		}
	}
	return attachments, nil
}

func (f *fakeAttachmentRepo) Get(ctx context.Context, id int) (types.Attachment, error) {
	attachment, ok := f.attachments[id]
	if !ok {
		return types.Attachment{}, store.ErrNotFound
	}
	return attachment, nil
}

func (f *fakeAttachmentRepo) Create(ctx context.Context, attachment types.Attachment) (types.Attachment, error) {
	attachment.ID = f.nextID
	f.nextID++
	now := time.Now()
	attachment.CreatedAt = now
	attachment.UpdatedAt = now
	f.attachments[attachment.ID] = attachment
	return attachment, nil
}

func (f *fakeAttachmentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.attachments[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.attachments, id)
	return nil
}
