package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
)

// decodeJSON reads a JSON body into v. An empty body leaves v untouched so
// that the service reports which field is missing.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.RegisterUser(r.Context(), user.Email, user.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("user_id", registered.ID).Msg("user registered")
	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	email, password, ok := r.BasicAuth()
	if !ok {
		log.Err(ErrInvalidBasicAuth).Send()
		utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.Authenticate(r.Context(), email, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, token, http.StatusOK)
}

// disconnect answers 204 without a body, so net/http sends neither
// Content-Type nor Content-Length.
func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Revoke(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Err(ErrNoUserInContext).Send()
		utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
