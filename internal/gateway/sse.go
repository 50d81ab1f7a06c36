package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter streams agent events to the client as server-sent events,
// flushing after every event so tool calls show up as they happen.
type SSEWriter struct {
	w       http.ResponseWriter
	control *http.ResponseController
}

func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	return &SSEWriter{w: w, control: http.NewResponseController(w)}
}

// Send writes one named event with a JSON-encoded payload.
func (s *SSEWriter) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return s.control.Flush()
}
