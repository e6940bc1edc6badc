package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is an optional numeric field. The API sends these as JSON
// numbers, numeric strings or null; anything that does not parse as a
// number decodes as absent instead of failing the whole record.
type Number struct {
	value float64
	valid bool
}

// NewNumber returns a present Number.
func NewNumber(v float64) Number {
	return Number{value: v, valid: true}
}

func (n Number) Valid() bool {
	return n.valid
}

func (n Number) Float() float64 {
	if !n.valid {
		return 0
	}
	return n.value
}

// Int truncates towards zero.
func (n Number) Int() int {
	return int(n.Float())
}

// Truthy reports whether the value is present and non-zero.
func (n Number) Truthy() bool {
	return n.valid && n.value != 0
}

func (n Number) String() string {
	if !n.valid {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode numeric string: %w", err)
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = NewNumber(v)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		// booleans, objects and arrays are not numbers
		return nil
	}
	*n = NewNumber(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Identifier is a record identifier that the API sends either as a number
// or as a string.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode identifier: %w", err)
		}
		*id = Identifier(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = Identifier(num.String())
	return nil
}
