package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/openai/openai-go/v3/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider plays back canned responses in order, repeating the last
// one when the script runs out.
type scriptedProvider struct {
	script []*responses.Response
	calls  int
}

func (p *scriptedProvider) ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error) {
	i := p.calls
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	p.calls++
	return p.script[i], nil
}

type stubTool struct {
	name   string
	inputs []string
	result string
	err    error
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) InputSchema() any {
	return map[string]any{"type": "object", "properties": map[string]any{}, "additionalProperties": false}
}
func (s *stubTool) Execute(ctx context.Context, input string) (string, error) {
	s.inputs = append(s.inputs, input)
	return s.result, s.err
}

func mustResponse(t *testing.T, raw string) *responses.Response {
	t.Helper()
	var resp responses.Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func answerResponse(t *testing.T, text string) *responses.Response {
	return mustResponse(t, `{
		"id": "resp_answer",
		"model": "gpt-4o-mini",
		"output": [{
			"type": "message", "id": "msg_1", "role": "assistant", "status": "completed",
			"content": [{"type": "output_text", "text": "`+text+`", "annotations": []}]
		}],
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`)
}

func toolCallResponse(t *testing.T, name, arguments string) *responses.Response {
	args, err := json.Marshal(arguments)
	require.NoError(t, err)
	return mustResponse(t, `{
		"id": "resp_call",
		"model": "gpt-4o-mini",
		"output": [{
			"type": "function_call", "id": "fc_1", "call_id": "call_1", "status": "completed",
			"name": "`+name+`", "arguments": `+string(args)+`
		}],
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`)
}

func collectEvents() (func(Event), *[]Event) {
	var events []Event
	return func(ev Event) { events = append(events, ev) }, &events
}

func eventsOfType(events []Event, typ EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func TestRunImmediateAnswer(t *testing.T) {
	provider := &scriptedProvider{script: []*responses.Response{answerResponse(t, "OK")}}
	runner := NewReactRunner(provider, NewRegistry())

	emit, events := collectEvents()
	answer, err := runner.Run(context.Background(), "session-1", "hello", emit)
	require.NoError(t, err)
	assert.Equal(t, "OK", answer)
	assert.Equal(t, 1, provider.calls)

	done := eventsOfType(*events, EventDone)
	require.Len(t, done, 1)
	assert.Equal(t, "OK", done[0].Data)
}

func TestRunWithToolCall(t *testing.T) {
	provider := &scriptedProvider{script: []*responses.Response{
		toolCallResponse(t, "get_user_info", `{"name":"Adam"}`),
		answerResponse(t, "Adam's email is adam@gmail.com"),
	}}

	tool := &stubTool{name: "get_user_info", result: `{"user_id":"1","name":"Adam","email":"adam@gmail.com"}`}
	registry := NewRegistry()
	registry.Register(tool)

	runner := NewReactRunner(provider, registry)

	emit, events := collectEvents()
	answer, err := runner.Run(context.Background(), "session-1", "what is Adam's email?", emit)
	require.NoError(t, err)
	assert.Equal(t, "Adam's email is adam@gmail.com", answer)

	require.Len(t, tool.inputs, 1)
	assert.JSONEq(t, `{"name":"Adam"}`, tool.inputs[0])

	require.Len(t, eventsOfType(*events, EventToolCall), 1)
	results := eventsOfType(*events, EventToolResult)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Data.(map[string]string)["content"], "adam@gmail.com")
}

func TestRunToolErrorBecomesObservation(t *testing.T) {
	provider := &scriptedProvider{script: []*responses.Response{
		toolCallResponse(t, "search_flights", `{"origin":"SFO","destination":"JFK"}`),
		answerResponse(t, "No flight found for that date."),
	}}

	tool := &stubTool{name: "search_flights", err: errors.New(`no flight from SFO to JFK on 2030-01-01: not found`)}
	registry := NewRegistry()
	registry.Register(tool)

	runner := NewReactRunner(provider, registry)

	emit, events := collectEvents()
	answer, err := runner.Run(context.Background(), "session-1", "book me a flight", emit)

	// The tool failure is an observation for the model, never a run failure.
	require.NoError(t, err)
	assert.Equal(t, "No flight found for that date.", answer)

	results := eventsOfType(*events, EventToolResult)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Data.(map[string]string)["content"], "error: ")
	assert.Empty(t, eventsOfType(*events, EventError))
}

// rendezvousTool blocks until every participant has started executing, so
// parallel tool goroutines are guaranteed to overlap.
type rendezvousTool struct {
	name    string
	result  string
	barrier *sync.WaitGroup
}

func (r *rendezvousTool) Name() string        { return r.name }
func (r *rendezvousTool) Description() string { return "stub" }
func (r *rendezvousTool) InputSchema() any {
	return map[string]any{"type": "object", "properties": map[string]any{}, "additionalProperties": false}
}
func (r *rendezvousTool) Execute(ctx context.Context, input string) (string, error) {
	r.barrier.Done()
	r.barrier.Wait()
	return r.result, nil
}

func TestRunParallelToolCallsSerializeEvents(t *testing.T) {
	first := mustResponse(t, `{
		"id": "resp_calls",
		"model": "gpt-4o-mini",
		"output": [
			{"type": "function_call", "id": "fc_1", "call_id": "call_1", "status": "completed",
			 "name": "get_user_info", "arguments": "{\"name\":\"Adam\"}"},
			{"type": "function_call", "id": "fc_2", "call_id": "call_2", "status": "completed",
			 "name": "list_destinations", "arguments": "{\"origin\":\"SFO\"}"}
		],
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`)
	provider := &scriptedProvider{script: []*responses.Response{first, answerResponse(t, "All set.")}}

	var barrier sync.WaitGroup
	barrier.Add(2)
	registry := NewRegistry()
	registry.Register(&rendezvousTool{name: "get_user_info", result: `{"name":"Adam"}`, barrier: &barrier})
	registry.Register(&rendezvousTool{name: "list_destinations", result: "JFK, LAX, SNA", barrier: &barrier})

	runner := NewReactRunner(provider, registry)

	// The collector appends to a plain slice; it relies on the runner
	// serializing emit calls from concurrent tool executions.
	emit, events := collectEvents()
	answer, err := runner.Run(context.Background(), "session-1", "plan my trip", emit)
	require.NoError(t, err)
	assert.Equal(t, "All set.", answer)
	assert.Equal(t, 2, provider.calls)

	assert.Len(t, eventsOfType(*events, EventToolCall), 2)
	assert.Len(t, eventsOfType(*events, EventToolResult), 2)
}

func TestRunUnknownToolContinues(t *testing.T) {
	provider := &scriptedProvider{script: []*responses.Response{
		toolCallResponse(t, "teleport", `{}`),
		answerResponse(t, "Sorry, I cannot do that."),
	}}

	runner := NewReactRunner(provider, NewRegistry())

	emit, events := collectEvents()
	answer, err := runner.Run(context.Background(), "session-1", "teleport me", emit)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I cannot do that.", answer)

	results := eventsOfType(*events, EventToolResult)
	require.Len(t, results, 1)
	assert.Equal(t, "error: unknown tool", results[0].Data.(map[string]string)["content"])
}

func TestRunIterationCap(t *testing.T) {
	// Model that never stops calling tools.
	provider := &scriptedProvider{script: []*responses.Response{
		toolCallResponse(t, "get_user_info", `{"name":"Adam"}`),
	}}

	tool := &stubTool{name: "get_user_info", result: "{}"}
	registry := NewRegistry()
	registry.Register(tool)

	runner := NewReactRunner(provider, registry)

	emit, events := collectEvents()
	_, err := runner.Run(context.Background(), "session-1", "loop forever", emit)

	// Non-fatal termination with a partial result.
	require.NoError(t, err)
	assert.Equal(t, maxIterations, provider.calls)

	errs := eventsOfType(*events, EventError)
	require.Len(t, errs, 1)
	assert.Equal(t, "iteration cap reached", errs[0].Data)
	require.Len(t, eventsOfType(*events, EventDone), 1)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &scriptedProvider{script: []*responses.Response{answerResponse(t, "OK")}}
	runner := NewReactRunner(provider, NewRegistry())

	emit, _ := collectEvents()
	_, err := runner.Run(ctx, "session-1", "hello", emit)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}
