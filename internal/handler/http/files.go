package http

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/go-chi/chi/v5"
)

const defaultContentType = "application/octet-stream"

func (h *Handler) createFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	entry, err := h.services.FileService.CreateEntry(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("file_id", entry.ID).Str("type", string(entry.Type)).Msg("entry created")
	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	entry, err := h.services.FileService.GetEntry(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

// listFiles serves GET /files?parentId=&page=. A missing or malformed page
// selects the first one.
func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		page = 0
	}

	entries, err := h.services.FileService.ListChildren(r.Context(), userID, models.ListEntriesRequest{
		ParentID: models.ParseParentID(query.Get("parentId")),
		Page:     page,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) publishFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	entry, err := h.services.FileService.Publish(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) unpublishFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	entry, err := h.services.FileService.Unpublish(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

// getFileData streams the payload, or the thumbnail selected by ?size=.
// The content type is derived from the entry name.
func (h *Handler) getFileData(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		var err error
		if size, err = strconv.Atoi(raw); err != nil {
			writeServiceError(w, r, service.ErrInvalidSize)
			return
		}
	}

	content, err := h.services.FileService.GetContent(r.Context(), userID, chi.URLParam(r, "id"), size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(content.Name))
	if contentType == "" {
		contentType = defaultContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(content.Data); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing file data")
	}
}
