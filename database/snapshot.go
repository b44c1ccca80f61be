package database

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/natefinch/atomic"

	"github.com/fulldump/restdb/collection"
)

// SaveSnapshot writes collections as a seed file. The previous file stays
// intact until the new one is complete.
func SaveSnapshot(filename string, collections map[string][]collection.Record) error {
	data, err := json.Marshal(collections, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = atomic.WriteFile(filename, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}
