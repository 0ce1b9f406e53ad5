package tools

import (
	"encoding/json"
	"strings"
)

// ParseArgs decodes JSON tool arguments, rejecting unknown fields so typos
// in parameter names surface as errors instead of silently defaulting.
func ParseArgs(jsonStr string, v interface{}) error {
	decoder := json.NewDecoder(strings.NewReader(jsonStr))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
