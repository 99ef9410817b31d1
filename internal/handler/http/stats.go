package http

import (
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.StatsService.Status(r.Context()), http.StatusOK)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.StatsService.Stats(r.Context()), http.StatusOK)
}
