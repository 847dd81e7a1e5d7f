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

type Event struct {
	Type  EventType `json:"type"`
	Agent string    `json:"agent,omitempty"`
	Data  any       `json:"data,omitempty"`
}

// Runner executes a single agent turn: one user message in, a final text
// answer out, with intermediate events pushed through emit.
type Runner interface {
	Run(ctx context.Context, runID string, message string, emit func(Event)) (string, error)
}
