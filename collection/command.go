package collection

import (
	"bytes"
	"encoding/json"
)

const (
	CommandInsert  = "insert"
	CommandReplace = "replace"
	CommandRemove  = "remove"
)

type Command struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`

	serialized chan *bytes.Buffer `json:"-"`
}

type replacePayload struct {
	ID     string          `json:"id"`
	Record json.RawMessage `json:"record"`
}

type removePayload struct {
	ID string `json:"id"`
}
