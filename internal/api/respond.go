package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
)

// errorResponse is the JSON envelope for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

// writeError maps an application error to its HTTP status and localized
// user message. The locale comes from Accept-Language; internal details
// stay out of the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err, r.Header.Get("Accept-Language")),
	})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(apperrors.CodeBadRequest),
		Message: message,
	})
}
