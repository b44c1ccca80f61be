package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/fulldump/restdb/collection"
)

// Lookup reads field from record. A key that exists verbatim wins, otherwise
// dots walk into nested objects.
func Lookup(record collection.Record, field string) (any, bool) {
	if value, ok := record[field]; ok {
		return value, true
	}
	if !strings.Contains(field, ".") {
		return nil, false
	}

	var current any = record
	for _, part := range strings.Split(field, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Known reports whether at least one record carries field.
func Known(records []collection.Record, field string) bool {
	for _, record := range records {
		if _, ok := Lookup(record, field); ok {
			return true
		}
	}
	return false
}

// Text is the form used by text comparisons and substring matches.
func Text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	}

	data, err := json.Marshal(value, json.Deterministic(true))
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}

// compareValues orders two record values: numbers numerically, false
// before true, anything else by text.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	}
	return strings.Compare(Text(a), Text(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}
