package utils

import (
	"github.com/go-json-experiment/json"
)

// Remarshal converts input into output through its JSON form, leaving only
// JSON types behind (numbers end up as float64 inside any).
func Remarshal(input interface{}, output interface{}) (err error) {
	b, err := json.Marshal(input)
	if nil != err {
		return
	}
	return json.Unmarshal(b, output)
}
