// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/utils"
)

// methodNotAllowed replaces chi's 405 answer: a known path requested with a
// method it does not serve is reported exactly like an unknown path.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not routed")

	notFound(w, r)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, msgNotFound, http.StatusNotFound)
}
