package services

import (
	"context"
	"strings"
	"time"

	"github.com/daybook-app/apiserver/types"
)

// Summary periods accepted by Summarize.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// EntryRepository defines persistence operations for journal entries.
// Implementations scope every operation to the owning user.
type EntryRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.Entry, error)
	ListByUserAndDateRange(ctx context.Context, userID int, start, end time.Time) ([]types.Entry, error)
	Get(ctx context.Context, userID, id int) (types.Entry, error)
	Create(ctx context.Context, entry types.Entry) (types.Entry, error)
	Update(ctx context.Context, entry types.Entry) (types.Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

// EntryService encapsulates journal entry use-cases.
type EntryService struct {
	repo EntryRepository
	now  func() time.Time
}

// EntryUpdate carries the optional fields of an entry update. Absent or
// blank fields are skipped, mirroring profile updates.
type EntryUpdate struct {
	Title    *string
	Content  *string
	Category *string
	Date     *time.Time
}

// Summary is the result of a period-bounded aggregate over a user's
// entries.
type Summary struct {
	Count   int           `json:"count"`
	Entries []types.Entry `json:"entries"`
}

func NewEntryService(repo EntryRepository) *EntryService {
	return &EntryService{repo: repo, now: time.Now}
}

// Create validates and persists a new entry owned by userID. The date
// defaults to the current time when not supplied.
func (s *EntryService) Create(ctx context.Context, userID int, title, content, category string, date *time.Time) (types.Entry, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	category = strings.TrimSpace(category)
	if title == "" || content == "" || category == "" {
		return types.Entry{}, ErrMissingFields
	}

	entryDate := s.now()
	if date != nil {
		entryDate = *date
	}

	return s.repo.Create(ctx, types.Entry{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: category,
		Date:     entryDate,
	})
}

func (s *EntryService) List(ctx context.Context, userID int) ([]types.Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *EntryService) Get(ctx context.Context, userID, id int) (types.Entry, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update applies the provided fields to the entry. Fields that are absent
// or blank are skipped; store.ErrNotFound is returned when no entry with
// the given id belongs to userID.
func (s *EntryService) Update(ctx context.Context, userID, id int, update EntryUpdate) (types.Entry, error) {
	entry, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return types.Entry{}, err
	}

	if update.Title != nil && strings.TrimSpace(*update.Title) != "" {
		entry.Title = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) != "" {
		entry.Content = strings.TrimSpace(*update.Content)
	}
	if update.Category != nil && strings.TrimSpace(*update.Category) != "" {
		entry.Category = strings.TrimSpace(*update.Category)
	}
	if update.Date != nil {
		entry.Date = *update.Date
	}

	return s.repo.Update(ctx, entry)
}

func (s *EntryService) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

// Summarize returns the user's entries with date in [anchor, anchor+offset),
// where the offset is one day, seven days, or one calendar month depending
// on period.
func (s *EntryService) Summarize(ctx context.Context, userID int, period string, anchor time.Time) (Summary, error) {
	var end time.Time
	switch period {
	case PeriodDaily:
		end = anchor.AddDate(0, 0, 1)
	case PeriodWeekly:
		end = anchor.AddDate(0, 0, 7)
	case PeriodMonthly:
		end = anchor.AddDate(0, 1, 0)
	default:
		return Summary{}, ErrInvalidPeriod
	}

	entries, err := s.repo.ListByUserAndDateRange(ctx, userID, anchor, end)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Count: len(entries), Entries: entries}, nil
}
