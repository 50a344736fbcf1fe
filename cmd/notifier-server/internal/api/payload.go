package api

import (
	"encoding/json"
	"strings"
)

// ExtractMessage turns an inbound payload into the display string that gets
// relayed to the chat.
//
// A JSON object payload that carries a "message" field uses that field and
// nothing else: a string value is trimmed and relayed, other values are
// rendered as compact JSON, and a blank value (empty string, null, zero,
// false, empty array or object) means no message. A JSON object without the
// field is re-rendered compactly as the message. Everything else - plain
// text, JSON scalars, bodies that fail to parse despite a JSON content
// type - is used verbatim.
//
// Returns "" when no displayable message can be extracted; the caller maps
// that to a bad-request outcome.
func ExtractMessage(body []byte, contentType string) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}

	if !strings.Contains(contentType, "application/json") {
		return raw
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Declared JSON but not an object; treat as text.
		return raw
	}

	if msgRaw, ok := fields["message"]; ok {
		return renderMessageField(msgRaw)
	}

	// No message field: render the whole object.
	compact, err := json.Marshal(fields)
	if err != nil {
		return raw
	}
	return string(compact)
}

// renderMessageField renders an explicitly present "message" value. The
// field is authoritative once present: a blank value is reported as no
// message rather than falling back to the enclosing object.
func renderMessageField(msgRaw json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(msgRaw, &msg); err == nil {
		return strings.TrimSpace(msg)
	}

	var value any
	if err := json.Unmarshal(msgRaw, &value); err != nil {
		return ""
	}

	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	case []any:
		if len(v) == 0 {
			return ""
		}
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
	}

	compact, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(compact)
}
