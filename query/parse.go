package query

import (
	"net/url"
	"slices"
	"strings"
)

const (
	KeySort   = "_sort"
	KeyOrder  = "_order"
	KeyPage   = "_page"
	KeyLimit  = "_limit"
	KeyStart  = "_start"
	KeyEnd    = "_end"
	KeyEmbed  = "_embed"
	KeyExpand = "_expand"
	KeyQuery  = "q"
)

// Parse builds a Spec from a raw query string. Pairs are read in the order
// they appear and malformed escapes are skipped, so it never fails.
func Parse(rawQuery string) *Spec {
	spec := &Spec{}

	sortFields := []string{}
	sortOrders := []string{}
	window := windowParams{}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		switch key {
		case KeySort:
			sortFields = append(sortFields, splitList(value)...)
		case KeyOrder:
			sortOrders = append(sortOrders, splitList(value)...)
		case KeyPage:
			window.page = param{value, true}
		case KeyLimit:
			window.limit = param{value, true}
		case KeyStart:
			window.start = param{value, true}
		case KeyEnd:
			window.end = param{value, true}
		case KeyEmbed:
			spec.Embed = appendUnique(spec.Embed, splitList(value)...)
		case KeyExpand:
			spec.Expand = appendUnique(spec.Expand, splitList(value)...)
		case KeyQuery:
			spec.FullText = value
		default:
			if strings.HasPrefix(key, "_") {
				continue // unknown reserved key
			}
			field, op := splitOperator(key)
			spec.Filters = append(spec.Filters, Filter{
				Field: field,
				Op:    op,
				Value: value,
			})
		}
	}

	for i, field := range sortFields {
		key := SortKey{Field: field, Order: Asc}
		if i < len(sortOrders) {
			key.Order = ParseOrder(sortOrders[i])
		}
		spec.Sort = append(spec.Sort, key)
	}

	spec.Window = window.resolve()

	return spec
}

func splitList(value string) []string {
	result := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
