package collection

import (
	"maps"

	"github.com/go-json-experiment/json"
)

// Record is a schemaless document. Values are always JSON decoded: string,
// float64, bool, nil, map[string]any or []any.
type Record = map[string]any

type Row struct {
	Seq     int64  // insertion order, kept across replaces
	ID      string // canonical id key
	Payload []byte
	Record  Record
}

// Less orders rows by insertion, required by the btree container.
func (r *Row) Less(than *Row) bool {
	return r.Seq < than.Seq
}

func encodeRecord(record Record) ([]byte, Record, error) {
	payload, err := json.Marshal(record, json.Deterministic(true))
	if err != nil {
		return nil, nil, err
	}

	decoded := Record{}
	err = json.Unmarshal(payload, &decoded)
	if err != nil {
		return nil, nil, err
	}

	return payload, decoded, nil
}

func cloneRecord(record Record) Record {
	if record == nil {
		return Record{}
	}
	return maps.Clone(record)
}
