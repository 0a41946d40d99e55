package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

// parseTimes parses each value with layout into the matching destination,
// naming the column on failure.
func parseTimes(layout string, pairs ...timeColumn) error {
	for _, p := range pairs {
		t, err := time.Parse(layout, p.value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p.column, err)
		}
		*p.dest = t
	}
	return nil
}

type timeColumn struct {
	column string
	value  string
	dest   *time.Time
}

// nullableString maps "" to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// formatTime stores a timestamp as RFC3339 UTC, substituting now for a zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// encodeJSON marshals v for a TEXT column.
func encodeJSON(v any, column string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", column, err)
	}
	return string(b), nil
}

// decodeJSON unmarshals a TEXT column into dest; an empty column is left as zero.
func decodeJSON(raw string, dest any, column string) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decoding %s: %w", column, err)
	}
	return nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
