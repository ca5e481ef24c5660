package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// LectureNumber is a lecture ordinal as clients send it: a JSON number or a
// numeric string. Fractional or non-numeric values are rejected.
type LectureNumber int

// UnmarshalJSON implements json.Unmarshaler.
func (n *LectureNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("invalid lecture number %q", raw)
	}
	*n = LectureNumber(f)
	return nil
}

// Int returns the ordinal, or 0 when n is nil.
func (n *LectureNumber) Int() int {
	if n == nil {
		return 0
	}
	return int(*n)
}
