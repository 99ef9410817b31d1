package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/internal/utils"
)

const tokenHeader = "X-Token"

// auth resolves the session named by the "X-Token" header and stores the
// user id and the token in the request context under [utils.UserIDCtxKey]
// and [utils.TokenCtxKey].
//
// A missing, unknown or expired token is answered with 401 and the body
// {"error":"Unauthorized"}, whatever the cause. A failing session store is
// reported as 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token := r.Header.Get(tokenHeader)
		if token == "" {
			log.Err(ErrEmptyTokenHeader).Send()
			utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
			return
		}

		userID, err := h.services.AuthService.ResolveSession(r.Context(), token)
		if errors.Is(err, service.ErrUnauthorized) {
			log.Err(err).Msg("session not found")
			utils.WriteError(w, msgUnauthorized, http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), userID, token)))
	})
}

// optionalAuth behaves like auth for a valid token but lets requests without
// a usable token through anonymously.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(tokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := h.services.AuthService.ResolveSession(r.Context(), token)
		if errors.Is(err, service.ErrUnauthorized) {
			logger.FromRequest(r).Debug().Msg("unknown token, continuing anonymously")
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), userID, token)))
	})
}

func withSession(ctx context.Context, userID, token string) context.Context {
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

	l := logger.FromContext(ctx).WithStr("user_id", userID)
	return l.WithContext(ctx)
}
