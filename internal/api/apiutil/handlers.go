package apiutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes a JSON error body with the given status. Encoding
// failures are logged and otherwise swallowed; the status line has already
// been decided.
func WriteError(w http.ResponseWriter, status int, message string) {
	if err := WriteJSON(w, status, map[string]string{"error": message}); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to write error response")
	}
}

// ParseBool reads a query-style boolean ("true"/"1"/"false"/"0"), defaulting
// to the given value for anything else.
func ParseBool(value string, fallback bool) bool {
	switch value {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return fallback
	}
}

func RequireQuery(r *http.Request, key string) (string, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return "", fmt.Errorf("query parameter %q is required", key)
	}
	return value, nil
}
