// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/fairyhunter13/versioned-product-api/internal/catalog"
	"github.com/fairyhunter13/versioned-product-api/internal/obs"
	"github.com/pkg/errors"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps catalog errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *catalog.ValidationError
		rv *catalog.RuleViolationError
	)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	case errors.As(err, &ve):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", ve.Reason)
	case errors.As(err, &rv):
		WriteJSONError(w, http.StatusBadRequest, "business_rule_violation", rv.Reason)
	default:
		obs.Logger.Error("request_failed",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
