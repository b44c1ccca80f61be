package query

import (
	"github.com/google/btree"

	"github.com/fulldump/restdb/collection"
)

type sortItem struct {
	position int
	record   collection.Record
	values   []any
	present  []bool
}

// Sort orders records by keys. Keys no record carries are dropped, records
// missing a key go last and ties keep their previous order.
func Sort(records []collection.Record, keys []SortKey) []collection.Record {
	active := []SortKey{}
	for _, key := range keys {
		if Known(records, key.Field) {
			active = append(active, key)
		}
	}
	if len(active) == 0 {
		return records
	}

	tree := btree.NewG(32, func(a, b *sortItem) bool {
		for i, key := range active {
			c := compareSortValues(a.values[i], a.present[i], b.values[i], b.present[i], key.Order)
			if c != 0 {
				return c < 0
			}
		}
		return a.position < b.position
	})

	for position, record := range records {
		item := &sortItem{
			position: position,
			record:   record,
			values:   make([]any, len(active)),
			present:  make([]bool, len(active)),
		}
		for i, key := range active {
			item.values[i], item.present[i] = Lookup(record, key.Field)
		}
		tree.ReplaceOrInsert(item)
	}

	sorted := make([]collection.Record, 0, len(records))
	tree.Ascend(func(item *sortItem) bool {
		sorted = append(sorted, item.record)
		return true
	})

	return sorted
}

func compareSortValues(a any, aok bool, b any, bok bool, order Order) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	c := compareValues(a, b)
	if order == Desc {
		c = -c
	}
	return c
}
