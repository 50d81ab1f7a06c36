package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"flightdesk/internal/history"
	"flightdesk/internal/llm"
	"flightdesk/internal/trace"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const defaultSystemPrompt = "You are an airline customer service agent that helps users book and manage flights. " +
	"You are given a list of tools to handle user requests, and you should decide the right tool to use in order to " +
	"fulfill users' requests. Summarize the process result for the user, including the information they need, " +
	"e.g. the confirmation_number if a new flight is booked."

// maxIterations bounds the reason-act cycle. Hitting it ends the run with a
// partial result instead of an error, so a looping model never wedges a
// session.
const maxIterations = 12

type ReactOption func(*ReactRunner)

func WithSystemPrompt(s string) ReactOption {
	return func(r *ReactRunner) { r.systemPrompt = s }
}

func WithHistory(store *history.Store) ReactOption {
	return func(r *ReactRunner) { r.store = store }
}

// ReactRunner implements a ReAct (Reason + Act) agent loop.
// Each iteration is one LLM call: the model reasons about the current state
// and either answers or requests tool calls. Tool results, including tool
// errors, are fed back as observations so the model can adapt.
type ReactRunner struct {
	provider     llm.Provider
	store        *history.Store
	registry     *Registry
	tools        []responses.ToolUnionParam
	systemPrompt string
}

func NewReactRunner(provider llm.Provider, registry *Registry, opts ...ReactOption) *ReactRunner {
	r := &ReactRunner{
		provider:     provider,
		registry:     registry,
		systemPrompt: defaultSystemPrompt,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, t := range registry.All() {
		schema, _ := t.InputSchema().(map[string]any)
		r.tools = append(r.tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  schema,
				Strict:      openai.Bool(true),
			},
		})
	}

	return r
}

func (r *ReactRunner) Run(ctx context.Context, sessionID string, message string, emit func(Event)) (string, error) {
	ctx = ContextWithSessionID(ctx, sessionID)

	truncatedMsg := message
	if len(truncatedMsg) > 200 {
		truncatedMsg = truncatedMsg[:200]
	}
	ctx, span := trace.Tracer().Start(ctx, "agent.run",
		oteltrace.WithAttributes(
			attribute.String("gen_ai.agent.name", "flightdesk"),
			attribute.String("session.id", sessionID),
			attribute.String("user.message", truncatedMsg),
		),
	)
	defer span.End()

	var input []responses.ResponseInputItemUnionParam
	if r.store != nil {
		if err := r.store.EnsureSession(ctx, sessionID, "cli"); err != nil {
			slog.Warn("failed to ensure session", "session_id", sessionID, "error", err)
		}
		prior, err := r.store.LoadInputHistory(ctx, sessionID)
		if err != nil {
			slog.Warn("failed to load history", "session_id", sessionID, "error", err)
		} else {
			input = prior
		}
	}

	input = append(input,
		responses.ResponseInputItemParamOfMessage(r.systemPrompt, "developer"),
		responses.ResponseInputItemParamOfMessage(message, "user"),
	)

	answer, resp, err := r.loop(ctx, input, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if r.store != nil && resp != nil {
		if err := r.store.SaveTurn(ctx, sessionID, message, resp); err != nil {
			slog.Warn("failed to save turn", "session_id", sessionID, "error", err)
		}
	}

	emit(Event{Type: EventDone, Data: answer})
	return answer, nil
}

// loop is the core ReAct cycle. It exits when the LLM returns no tool calls
// (task complete), the iteration cap is hit (partial result), or the context
// is cancelled.
func (r *ReactRunner) loop(ctx context.Context, input []responses.ResponseInputItemUnionParam, emit func(Event)) (string, *responses.Response, error) {
	var (
		resp       *responses.Response
		transcript strings.Builder
	)

	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			emit(Event{Type: EventError, Data: "request cancelled"})
			return "", nil, err
		}

		if iteration >= maxIterations {
			slog.Warn("iteration cap reached, returning partial result", "iterations", iteration)
			emit(Event{Type: EventError, Data: "iteration cap reached"})
			return transcript.String(), resp, nil
		}

		llmCtx, llmSpan := trace.Tracer().Start(ctx, "llm.step",
			oteltrace.WithAttributes(attribute.Int("llm.iteration", iteration)),
		)

		var err error
		resp, err = r.provider.ChatStream(llmCtx, input, r.tools, func(token string) {
			emit(Event{Type: EventToken, Data: token})
		})
		if err != nil {
			llmSpan.RecordError(err)
			llmSpan.SetStatus(codes.Error, err.Error())
			llmSpan.End()
			emit(Event{Type: EventError, Data: err.Error()})
			return "", nil, err
		}

		llmSpan.SetAttributes(
			attribute.String("llm.model", string(resp.Model)),
			attribute.Int64("llm.input_tokens", resp.Usage.InputTokens),
			attribute.Int64("llm.output_tokens", resp.Usage.OutputTokens),
		)
		llmSpan.End()

		if text := outputText(resp); text != "" {
			if transcript.Len() > 0 {
				transcript.WriteString("\n")
			}
			transcript.WriteString(text)
		}

		// Feed the LLM's output (including its reasoning) back into context.
		input = append(input, history.OutputToInput(resp.Output)...)

		var calls []responses.ResponseOutputItemUnion
		for _, item := range resp.Output {
			if item.Type == "function_call" {
				calls = append(calls, item)
			}
		}

		// No tool calls means the agent considers the task done; its last
		// message is the answer.
		if len(calls) == 0 {
			return outputText(resp), resp, nil
		}

		results := r.act(ctx, calls, emit)
		input = append(input, results...)
	}
}

// act executes tool calls in parallel, emitting events for each, and returns
// the results formatted as input items for the next LLM turn. Tool failures
// become "error: ..." observations rather than run failures.
func (r *ReactRunner) act(ctx context.Context, calls []responses.ResponseOutputItemUnion, emit func(Event)) []responses.ResponseInputItemUnionParam {
	for _, call := range calls {
		fc := call.AsFunctionCall()
		emit(Event{Type: EventToolCall, Data: map[string]string{
			"name":      fc.Name,
			"arguments": fc.Arguments,
		}})
	}

	// Emit callbacks write to shared sinks (an SSE response writer, stdout)
	// that are not safe for concurrent use, so emission from the tool
	// goroutines is serialized.
	var emitMu sync.Mutex
	sequentialEmit := func(ev Event) {
		emitMu.Lock()
		defer emitMu.Unlock()
		emit(ev)
	}

	var wg sync.WaitGroup
	results := make([]responses.ResponseInputItemUnionParam, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call responses.ResponseOutputItemUnion) {
			defer wg.Done()
			fc := call.AsFunctionCall()

			output := r.invoke(ctx, fc.Name, fc.Arguments)
			results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, output)
			sequentialEmit(Event{Type: EventToolResult, Data: map[string]string{
				"name":    fc.Name,
				"content": output,
			}})
		}(i, call)
	}

	wg.Wait()
	return results
}

func (r *ReactRunner) invoke(ctx context.Context, name, arguments string) string {
	tool, ok := r.registry.Get(name)
	if !ok {
		slog.Warn("unknown tool call", "name", name)
		return "error: unknown tool"
	}

	result, err := withTrace(tool).Execute(ctx, arguments)
	if err != nil {
		slog.Warn("tool execution failed", "name", name, "error", err)
		return "error: " + err.Error()
	}
	return result
}

// outputText concatenates the text content of the response's message items.
func outputText(resp *responses.Response) string {
	var b strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.AsMessage().Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	return b.String()
}
