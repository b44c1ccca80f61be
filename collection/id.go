package collection

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate id")
	ErrInvalidID   = errors.New("invalid id")
)

// IDKey returns the canonical text form used to compare identifiers, so the
// number 1 and the path segment "1" name the same record.
func IDKey(value any) (string, bool) {
	switch id := value.(type) {
	case string:
		return id, id != ""
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) {
			return "", false
		}
		if id == math.Trunc(id) && math.Abs(id) < 1<<53 {
			return strconv.FormatInt(int64(id), 10), true
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	}
	return "", false
}
