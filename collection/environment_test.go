package collection

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func Environment(f func(filename string)) {
	filename := filepath.Join(os.TempDir(), "test_"+uuid.New().String()+".jsonl")
	defer os.Remove(filename)

	f(filename)
}

func ids(records []Record) []string {
	result := []string{}
	for _, record := range records {
		id, _ := IDKey(record["id"])
		result = append(result, id)
	}
	return result
}
