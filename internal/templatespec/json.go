package templatespec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the set keys as an object keyed by key name. The
// original specification string is not included.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields)
}

// UnmarshalJSON decodes an object produced by MarshalJSON, applying the
// same checks as New. Unknown keys are rejected.
func (s *Spec) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var f Fields
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("templatespec: failed to decode: %w", err)
	}

	parsed, err := New(f)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
