package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:   http.StatusBadRequest,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrConflict:     http.StatusBadRequest,
	service.ErrNotFound:     http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status of err's class. Domain errors
// carry their own message; anything else is logged and hidden behind a
// generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error")
		utils.WriteError(w, msgInternalError, status)
		return
	}

	message := err.Error()
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	if status == http.StatusUnauthorized {
		message = msgUnauthorized
	}

	log.Debug().Err(err).Int("status", status).Send()
	utils.WriteError(w, message, status)
}
