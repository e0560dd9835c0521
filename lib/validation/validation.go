package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Error collects every problem found in a request.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return strings.Join(e.Problems, "; ")
}

// ParseID validates a numeric identifier taken from a query string.
func ParseID(name, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, &Error{Problems: []string{fmt.Sprintf("%s: must be an integer, got %q", name, value)}}
	}
	return id, nil
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
