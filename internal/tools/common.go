package tools

import (
	"encoding/json"
	"fmt"

	"flightdesk/internal/booking"
)

const maxOutputBytes = 10_000

func truncate(b []byte) string {
	if len(b) > maxOutputBytes {
		return string(b[:maxOutputBytes]) + "\n... (truncated)"
	}
	return string(b)
}

// parseArgs decodes the model-supplied JSON arguments. Failures are invalid
// queries, so the loop can show the model what it got wrong.
func parseArgs(tool, input string, v any) error {
	if err := json.Unmarshal([]byte(input), v); err != nil {
		return fmt.Errorf("parsing %s input: %v: %w", tool, err, booking.ErrInvalidQuery)
	}
	return nil
}

func asJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return truncate(b), nil
}
