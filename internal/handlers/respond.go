package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// partial is a decoded request body that distinguishes absent fields from
// fields explicitly set to null, which plain struct decoding cannot.
type partial map[string]json.RawMessage

func decodePartial(r *http.Request) (partial, error) {
	var p partial
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		p = partial{}
	}
	return p, nil
}

func (p partial) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p partial) str(key string) *string {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

// jsonText reads a field that is stored as JSON text in a TEXT column. A
// string value comes back as-is; objects, arrays, numbers and booleans come
// back as their compact JSON encoding; null and absent both yield nil.
func (p partial) jsonText(key string) *string {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil
	}
	text := buf.String()
	return &text
}

func (p partial) i64(key string) *int64 {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var n *int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return n
}
