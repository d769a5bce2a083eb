package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
)

// cleanKeys trims whitespace from every object key, recursively.
// Sheet headers often carry stray spaces that would otherwise miss struct tags.
func cleanKeys(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, val := range typed {
			out[strings.TrimSpace(k)] = cleanKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, val := range typed {
			out[i] = cleanKeys(val)
		}
		return out
	default:
		return v
	}
}

// cleanData decodes raw JSON, trims its keys and decodes the result into dst.
// Numbers are kept as literals so long identifiers survive the round trip.
func cleanData(raw json.RawMessage, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	cleaned, err := json.Marshal(cleanKeys(generic))
	if err != nil {
		return err
	}
	return json.Unmarshal(cleaned, dst)
}

func isEmptyData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
