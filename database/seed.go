package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/utils"
)

// ReadSeed loads a seed file: an object whose keys are collection names and
// whose values are arrays of records. YAML is picked by extension, anything
// else is read as JSON with comments and trailing commas allowed.
func ReadSeed(filename string) (map[string][]collection.Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	document := map[string]any{}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		raw := map[string]any{}
		err = yaml.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		// normalizes numbers to float64 like any other record
		err = utils.Remarshal(raw, &document)
		if err != nil {
			return nil, fmt.Errorf("normalize yaml: %w", err)
		}
	default:
		data, err = hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("decode jsonc: %w", err)
		}
		err = json.Unmarshal(data, &document)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	return seedCollections(document)
}

func seedCollections(document map[string]any) (map[string][]collection.Record, error) {
	result := map[string][]collection.Record{}

	for _, name := range utils.GetKeys(document) {
		items, ok := document[name].([]any)
		if !ok {
			log.Printf("WARNING: seed entry '%s' is not a list, ignored\n", name)
			continue
		}

		records := make([]collection.Record, 0, len(items))
		for i, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("'%s' item %d is not an object", name, i)
			}
			records = append(records, record)
		}
		result[name] = records
	}

	return result, nil
}
