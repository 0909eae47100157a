package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a PATCH field that distinguishes absent from null:
//   - Present=false: field absent (leave unchanged)
//   - Present=true, Value=nil: JSON null
//   - Present=true, Value=&s: a string, possibly empty
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called for fields present in the document.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Get returns the value with null read as "". ok is false when absent.
func (o OptionalString) Get() (value string, ok bool) {
	if !o.Present {
		return "", false
	}
	if o.Value == nil {
		return "", true
	}
	return *o.Value, true
}
