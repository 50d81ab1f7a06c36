package agent

import "context"

type EventType string

const (
	EventToken      EventType = "token"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// Event is one observable step of a run: streamed answer text, a tool
// invocation, its result, or the terminal done/error marker.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Runner executes one user request to completion. The final answer is
// returned and also carried on the EventDone event.
type Runner interface {
	Run(ctx context.Context, sessionID string, message string, emit func(Event)) (string, error)
}
