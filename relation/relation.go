// Package relation attaches related records by foreign key. A child points
// to its parent through a field named after the singular parent collection
// followed by Id, so comments carry postId.
package relation

import (
	"github.com/jinzhu/inflection"

	"github.com/fulldump/restdb/collection"
)

// Source hands out the records of a collection. ok is false when the
// collection does not exist.
type Source interface {
	Records(name string) (records []collection.Record, ok bool)
}

// ForeignKey returns the field children use to reference parent, "posts"
// gives "postId".
func ForeignKey(parent string) string {
	return inflection.Singular(parent) + "Id"
}

func sameID(a, b any) bool {
	ka, ok := collection.IDKey(a)
	if !ok {
		return false
	}
	kb, ok := collection.IDKey(b)
	return ok && ka == kb
}

// Children lists the records of child that reference the parent with id.
// An unknown child collection yields an empty list.
func Children(source Source, parent string, id any, child string) []collection.Record {
	result := []collection.Record{}

	records, ok := source.Records(child)
	if !ok {
		return result
	}

	foreignKey := ForeignKey(parent)
	for _, record := range records {
		if sameID(record[foreignKey], id) {
			result = append(result, record)
		}
	}

	return result
}

// Embed attaches, for every child name, the children of each record under a
// key named after the child collection. Records are modified in place.
func Embed(source Source, parent string, records []collection.Record, children []string) {
	if len(children) == 0 {
		return
	}

	foreignKey := ForeignKey(parent)

	for _, child := range children {
		byParent := map[string][]collection.Record{}
		childRecords, _ := source.Records(child)
		for _, record := range childRecords {
			key, ok := collection.IDKey(record[foreignKey])
			if !ok {
				continue
			}
			byParent[key] = append(byParent[key], record)
		}

		for _, record := range records {
			embedded := []collection.Record{}
			if key, ok := collection.IDKey(record["id"]); ok && byParent[key] != nil {
				embedded = append(embedded, byParent[key]...)
			}
			record[child] = embedded
		}
	}
}

// Expand attaches the referenced parent to each record, for every parent
// given in singular form ("post" reads postId from posts). Records whose
// parent is missing are left untouched.
func Expand(source Source, records []collection.Record, parents []string) {
	for _, parent := range parents {
		plural := inflection.Plural(parent)
		parentRecords, ok := source.Records(plural)
		if !ok {
			continue
		}

		byID := map[string]collection.Record{}
		for _, record := range parentRecords {
			if key, ok := collection.IDKey(record["id"]); ok {
				byID[key] = record
			}
		}

		foreignKey := parent + "Id"
		for _, record := range records {
			key, ok := collection.IDKey(record[foreignKey])
			if !ok {
				continue
			}
			if found, exists := byID[key]; exists {
				record[parent] = found
			}
		}
	}
}
