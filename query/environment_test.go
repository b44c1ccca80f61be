package query

import (
	"fmt"

	"github.com/fulldump/restdb/collection"
)

func posts(n int) []collection.Record {
	records := []collection.Record{}
	for i := 1; i <= n; i++ {
		records = append(records, collection.Record{
			"id":     float64(i),
			"userId": float64((i-1)/10 + 1),
			"title":  fmt.Sprintf("post number %d", i),
		})
	}
	return records
}

func ids(records []collection.Record) []string {
	result := []string{}
	for _, record := range records {
		id, _ := collection.IDKey(record["id"])
		result = append(result, id)
	}
	return result
}

func idRange(from, to int) []string {
	result := []string{}
	for i := from; i <= to; i++ {
		result = append(result, fmt.Sprint(i))
	}
	return result
}
