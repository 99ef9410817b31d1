package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/logger"
)

// getServerVersion answers with a one-line plain text banner.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	banner := "files-manager " + h.services.AppInfoService.GetAppVersion(r.Context()) + "\n"

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, banner); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing version")
	}
}
