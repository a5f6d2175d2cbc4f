package draft

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Helpers for reading fields of documents written by other tools. Values are
// interpreted the way a dynamically typed reader would: null is absent,
// numbers may be integers or floats, and anything non-empty is truthy.

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false
	}
	return a, true
}

// asString returns string values as is and the JSON text of anything else.
func asString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// asInt truncates numeric values toward zero; non-numbers read as zero.
func asInt(raw json.RawMessage) int64 {
	if isNull(raw) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func asStrings(raw json.RawMessage) []string {
	items, ok := asArray(raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, asString(it))
	}
	return out
}

// asFloats reads a numeric array, skipping non-numeric items.
func asFloats(raw json.RawMessage) []float64 {
	items, ok := asArray(raw)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		var f float64
		if err := json.Unmarshal(it, &f); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func truthy(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	s := strings.TrimSpace(string(raw))
	switch s {
	case "false", "0", `""`, "[]", "{}":
		return false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	return true
}

// encode marshals without HTML escaping so text content stays readable.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// mergeObject encodes extra plus the typed fields; typed fields win.
func mergeObject(extra map[string]json.RawMessage, typed map[string]any) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(extra)+len(typed))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range typed {
		b, err := encode(v)
		if err != nil {
			return nil, err
		}
		out[k] = b
	}
	return encode(out)
}
