package model

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrDeltaRequired is returned when a stock adjustment body carries no delta.
var ErrDeltaRequired = errors.New("stock delta is required")

// StockAdjustment is the body of a stock PATCH. It accepts a bare JSON
// integer or an object of the form {"delta": n}.
type StockAdjustment struct {
	Delta int
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StockAdjustment) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrDeltaRequired
	}
	if b[0] != '{' {
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.Wrap(err, "stock delta must be an integer")
		}
		s.Delta = n
		return nil
	}
	var body struct {
		Delta *int `json:"delta"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return errors.Wrap(err, "decode stock adjustment")
	}
	if body.Delta == nil {
		return ErrDeltaRequired
	}
	s.Delta = *body.Delta
	return nil
}
