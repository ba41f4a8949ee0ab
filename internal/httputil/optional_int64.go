package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalInt64 tracks presence and value of a nullable id in a JSON body.
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null
//   - Present=true, Value=&n: field has value
type OptionalInt64 struct {
	Present bool
	Value   *int64
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	o.Value = &n
	return nil
}
