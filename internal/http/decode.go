package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into dst. Strict decoding rejects unknown
// fields. It writes the error response itself and reports whether to go on.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, model.ErrDeltaRequired) {
			WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "product id must be an integer")
		return 0, false
	}
	return id, true
}
