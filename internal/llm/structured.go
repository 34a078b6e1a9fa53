package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawResponseError is returned when a model response cannot be parsed as
// the requested structure. It carries the raw text so callers can log or
// surface it for diagnosis.
type RawResponseError struct {
	Raw string
	Err error
}

func (e *RawResponseError) Error() string {
	return fmt.Sprintf("parse structured response: %v", e.Err)
}

func (e *RawResponseError) Unwrap() error {
	return e.Err
}

// DecodeObject extracts one JSON object from a model response and decodes
// it into v. Models wrap JSON in code fences, prose, or both; this adapter
// strips the wrapping, locates the outermost braces, drops control
// characters, and decodes. Failures return a *RawResponseError.
func DecodeObject(raw string, v any) error {
	return decode(raw, '{', '}', v)
}

// DecodeArray extracts one JSON array from a model response and decodes it
// into v. Same contract as DecodeObject.
func DecodeArray(raw string, v any) error {
	return decode(raw, '[', ']', v)
}

func decode(raw string, open, close byte, v any) error {
	text := stripFences(strings.TrimSpace(raw))

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end <= start {
		return &RawResponseError{Raw: raw, Err: fmt.Errorf("no %c...%c found", open, close)}
	}
	text = sanitize(text[start : end+1])

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &RawResponseError{Raw: raw, Err: err}
	}
	return nil
}

// stripFences removes a leading/trailing markdown code fence if present
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	// Drop the opening fence line (``` or ```json)
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// sanitize replaces raw newlines with spaces and drops other control
// characters that models sometimes leave inside string values
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r < 0x20 || (r >= 0x7f && r <= 0x9f):
			// skip
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
