package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/services"
	"github.com/daybook-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

const summaryDateLayout = "2006-01-02"

// EntryHandler provides journal entry endpoints. Every operation is
// scoped to the authenticated user.
type EntryHandler struct {
	entryService *services.EntryService
}

func NewEntryHandler(entryService *services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// EntryRouter registers entry routes on the given router. All routes
// require authentication.
func EntryRouter(r chi.Router, handler *EntryHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Use(authMiddleware)
	r.Post("/", handler.CreateEntry)
	r.Get("/", handler.ListEntries)
	r.Get("/summary", handler.Summarize)
	r.Route("/{entryID}", func(r chi.Router) {
		r.Get("/", handler.GetEntry)
		r.Put("/", handler.UpdateEntry)
		r.Delete("/", handler.DeleteEntry)
	})
}

// EntryCreateRequest is the payload for creating an entry. The date is
// optional and defaults to the current time.
type EntryCreateRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Category string     `json:"category"`
	Date     *time.Time `json:"date"`
}

// EntryUpdateRequest carries optional entry fields; absent or blank
// fields are skipped.
type EntryUpdateRequest struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	Category *string    `json:"category"`
	Date     *time.Time `json:"date"`
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req EntryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.entryService.Create(r.Context(), userID, req.Title, req.Content, req.Category, req.Date)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Please provide all the required details")
			return
		}
		logger.FromRequest(r).Err(err).Msg("entry creation failed")
		writeError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	entries, err := h.entryService.List(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("entry list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := parseIDParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.entryService.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("entry fetch failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := parseIDParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req EntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.entryService.Update(r.Context(), userID, id, services.EntryUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("entry update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := parseIDParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.entryService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("entry delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Journal Entry Deleted"})
}

// Summarize returns a count and the matching entries for the requested
// period starting at the anchor date. The date defaults to today.
func (h *EntryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	period := strings.TrimSpace(r.URL.Query().Get("period"))

	anchor := time.Now().Truncate(24 * time.Hour)
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		anchor, err = time.Parse(summaryDateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date")
			return
		}
	}

	summary, err := h.entryService.Summarize(r.Context(), userID, period, anchor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, "Invalid period")
			return
		}
		logger.FromRequest(r).Err(err).Msg("entry summary failed")
		writeError(w, http.StatusInternalServerError, "Failed to summarize entries")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
