package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/services"
	"github.com/daybook-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

const (
	formFieldFile    = "file"
	formFieldEntryID = "entryId"

	maxMultipartMemory = 8 << 20
)

// AttachmentHandler provides attachment endpoints. Access is always
// validated against the caller's ownership of the parent entry.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
	maxUploadBytes    int64
}

func NewAttachmentHandler(attachmentService *services.AttachmentService, maxUploadBytes int64) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		maxUploadBytes:    maxUploadBytes,
	}
}

// AttachmentRouter registers attachment routes on the given router. All
// routes require authentication.
func AttachmentRouter(r chi.Router, handler *AttachmentHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Use(authMiddleware)
	r.Post("/upload", handler.Upload)
	r.Get("/{entryID}", handler.ListByEntry)
	r.Get("/download/{attachmentID}", handler.Download)
	r.Delete("/{attachmentID}", handler.Delete)
}

// Upload accepts a multipart form with an entryId field and a single
// file part, stores the bytes under a server-generated key, and records
// the metadata.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	entryID, err := strconv.Atoi(strings.TrimSpace(r.FormValue(formFieldEntryID)))
	if err != nil || entryID < 1 {
		writeError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.attachmentService.Upload(r.Context(), userID, entryID, header.Filename, contentType, file, header.Size)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("attachment upload failed")
		writeError(w, http.StatusInternalServerError, "Failed to upload attachment")
		return
	}

	writeJSON(w, http.StatusCreated, attachment)
}

// ListByEntry returns the attachments of one of the caller's entries.
func (h *AttachmentHandler) ListByEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	entryID, err := parseIDParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attachments, err := h.attachmentService.ListByEntry(r.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("attachment list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list attachments")
		return
	}

	writeJSON(w, http.StatusOK, attachments)
}

// Download streams the attachment bytes with the original file name.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	attachmentID, err := parseIDParam(r, "attachmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attachment, reader, err := h.attachmentService.Download(r.Context(), userID, attachmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Attachment not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("attachment download failed")
		writeError(w, http.StatusInternalServerError, "Failed to download attachment")
		return
	}
	defer reader.Close()

	contentType := attachment.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

// Delete removes the attachment record and its stored object.
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	attachmentID, err := parseIDParam(r, "attachmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.attachmentService.Delete(r.Context(), userID, attachmentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Attachment not found")
			return
		}
		logger.FromRequest(r).Err(err).Msg("attachment delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Attachment deleted"})
}
