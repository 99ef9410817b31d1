package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-files-manager/models"
)

// fallbackBody is written when a response value cannot be encoded.
const fallbackBody = `{"error":"Internal server error"}`

// WriteJSON encodes data and writes it with the given status code.
//
// The body is written without a trailing newline and with an explicit
// Content-Length. When data cannot be encoded the client receives a 500
// with a generic error body and the encoding error is returned.
//
//	WriteJSON(w, models.Status{Redis: true, DB: true}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		writeRaw(w, []byte(fallbackBody), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding %T to JSON: %w", data, err)
	}

	return writeRaw(w, body, statusCode)
}

// WriteError writes {"error": message} with the given status code.
func WriteError(w http.ResponseWriter, message string, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

func writeRaw(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(statusCode)

	return w.Write(body)
}
