package response

import (
	"bytes"
	"encoding/json"
)

// Payload is a decoded API response. The raw bytes are kept exactly as
// received; Value is the generic decoded form.
type Payload struct {
	raw   json.RawMessage
	value any
}

// Raw returns the body exactly as it was received.
func (p Payload) Raw() json.RawMessage {
	return p.raw
}

// Value returns the decoded JSON value (map[string]any, []any, json.Number, string or bool).
func (p Payload) Value() any {
	return p.value
}

// Object returns the top-level object, or nil if the payload is not an object.
func (p Payload) Object() map[string]any {
	obj, _ := p.value.(map[string]any)
	return obj
}

// Response returns the "response" member that wraps most method results.
func (p Payload) Response() any {
	return p.Object()["response"]
}

// Unmarshal decodes the raw payload into v.
func (p Payload) Unmarshal(v any) error {
	return json.Unmarshal(p.raw, v)
}

// IsZero reports whether p holds nothing.
func (p Payload) IsZero() bool {
	return len(p.raw) == 0
}

func (p Payload) String() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, p.raw); err != nil {
		return string(p.raw)
	}
	return buf.String()
}
