package query

import (
	"cmp"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/restdb/collection"
)

// Match evaluates the filter against a single record.
func (f Filter) Match(record collection.Record) bool {
	value, exists := Lookup(record, f.Field)

	switch f.Op {
	case OpEq:
		return exists && equals(value, f.Value)
	case OpNe:
		return !exists || !equals(value, f.Value)
	case OpGte:
		return exists && compareQuery(value, f.Value) >= 0
	case OpLte:
		return exists && compareQuery(value, f.Value) <= 0
	case OpLike:
		return exists && strings.Contains(Text(value), f.Value)
	}

	return false
}

// equals coerces the query string to the type found on the record before
// comparing.
func equals(value any, query string) bool {
	switch value.(type) {
	case nil:
		return query == "null"
	case map[string]any, []any:
		return Text(value) == query
	}

	coerced, ok := coerce(value, query)
	if !ok {
		return false
	}

	match, err := connor.Match(
		map[string]interface{}{"v": coerced},
		map[string]interface{}{"v": value},
	)
	return err == nil && match
}

func coerce(sample any, query string) (any, bool) {
	switch sample.(type) {
	case string:
		return query, true
	case float64:
		return parseNumber(query)
	case bool:
		switch query {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return nil, false
}

// compareQuery is numeric when both sides are numbers, textual otherwise.
func compareQuery(value any, query string) int {
	if n, ok := value.(float64); ok {
		if q, ok := parseNumber(query); ok {
			return cmp.Compare(n, q)
		}
	}
	return strings.Compare(Text(value), query)
}

// Search reports whether the serialized record contains term. An empty term
// matches everything.
func Search(record collection.Record, term string) bool {
	if term == "" {
		return true
	}

	data, err := json.Marshal(record, json.Deterministic(true))
	if err != nil {
		return false
	}

	return strings.Contains(string(data), term)
}

// Evaluate keeps the records matching every filter and the full text term.
// A filter on a field no record has matches nothing.
func Evaluate(records []collection.Record, filters []Filter, fullText string) []collection.Record {
	for _, filter := range filters {
		if !Known(records, filter.Field) {
			return []collection.Record{}
		}
	}

	result := []collection.Record{}
next:
	for _, record := range records {
		for _, filter := range filters {
			if !filter.Match(record) {
				continue next
			}
		}
		if !Search(record, fullText) {
			continue
		}
		result = append(result, record)
	}

	return result
}
