package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a sheet cell that may arrive as a string, a number or a boolean.
// It always decodes to its textual form and encodes as a JSON string.
type Text string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(normalizeNumber(n.String()))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*t = Text(strconv.FormatBool(b))
	return nil
}

// String returns the raw text.
func (t Text) String() string {
	return string(t)
}

// Trim returns the text without surrounding whitespace.
func (t Text) Trim() string {
	return strings.TrimSpace(string(t))
}

// Int parses the leading integer of the text, returning 0 when there is none.
func (t Text) Int() int {
	s := t.Trim()
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// whole numbers like 12.0 come back from spreadsheets for integer cells.
// Digits are never reparsed so long identifiers keep their precision.
func normalizeNumber(raw string) string {
	if strings.ContainsAny(raw, "eE") {
		return raw
	}
	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		return raw
	}
	if strings.Trim(raw[dot+1:], "0") == "" {
		return raw[:dot]
	}
	return raw
}
