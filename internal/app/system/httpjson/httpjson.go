// Package httpjson provides the JSON response helpers used by API
// handlers. Error bodies are shaped {"detail": "..."} so every failure
// path produces a distinct, human-readable response.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error response with the given status and detail message.
func Error(w http.ResponseWriter, status int, detail string) {
	Respond(w, status, ErrorBody{Detail: detail})
}
