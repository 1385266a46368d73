// Package response turns VK response bodies into payloads or typed errors.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
)

var errNullBody = errors.New("top-level value is null")

type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

const (
	errorCodeField    = "error_code"
	errorMessageField = "error_msg"

	// maxExactFloat is the largest integer a float64 code can carry exactly.
	maxExactFloat = 1 << 53
)

// Decode parses body as JSON.
//
// An "error" member carrying an error_code is returned as a *RemoteError. An
// "error" member without one does not fail the decode: the payload is returned
// along with the error value as a warning, so the caller can record it.
func Decode(body []byte) (Payload, string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return Payload{}, "", &DecodeError{Body: string(body), Err: err}
	}
	if dec.More() {
		return Payload{}, "", &DecodeError{Body: string(body), Err: errors.New("trailing data after JSON value")}
	}
	if value == nil {
		return Payload{}, "", &DecodeError{Body: string(body), Err: errNullBody}
	}

	payload := Payload{raw: json.RawMessage(bytes.TrimSpace(body)), value: value}
	if _, ok := value.(map[string]any); !ok {
		return payload, "", nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 || string(env.Error) == "null" {
		return payload, "", nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(env.Error, &fields); err == nil {
		if code, ok := fields[errorCodeField]; ok && string(code) != "null" {
			remote := &RemoteError{Code: errorCode(code)}
			if msg, ok := fields[errorMessageField]; ok && string(msg) != "null" {
				remote.Message = warningText(msg)
			}
			return Payload{}, "", remote
		}
	}

	return payload, warningText(env.Error), nil
}

// warningText renders an unstructured error value: strings as-is, anything
// else as compact JSON.
func warningText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// errorCode reads error_code as a JSON number or a numeric string. A code that
// does not parse as an integer is reported as 0; the error stays structured.
func errorCode(raw json.RawMessage) int {
	s := string(bytes.TrimSpace(raw))
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		s = strings.TrimSpace(quoted)
	}

	n := json.Number(s)
	if v, err := n.Int64(); err == nil {
		if int64(int(v)) == v {
			return int(v)
		}
		return 0
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
		return int(f)
	}
	return 0
}
