package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxJSONBodyBytes caps JSON request bodies
const MaxJSONBodyBytes = 1 << 20

// ParseJSON decodes the JSON request body into dest.
// Bodies larger than MaxJSONBodyBytes are rejected (w is needed for the 413).
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
