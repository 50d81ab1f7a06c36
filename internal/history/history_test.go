package history

import (
	"context"
	"encoding/json"
	"testing"

	"flightdesk/internal/db"

	"github.com/openai/openai-go/v3/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())
	return NewStore(database)
}

func sampleResponse(t *testing.T) *responses.Response {
	t.Helper()
	raw := `{
		"id": "resp_1",
		"model": "gpt-4o-mini",
		"output": [{
			"type": "message", "id": "msg_1", "role": "assistant", "status": "completed",
			"content": [{"type": "output_text", "text": "Booked, confirmation abc12345.", "annotations": []}]
		}]
	}`
	var resp responses.Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestSaveAndReplayTurn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "session-1", "cli"))
	// Idempotent for an existing session.
	require.NoError(t, store.EnsureSession(ctx, "session-1", "cli"))

	require.NoError(t, store.SaveTurn(ctx, "session-1", "book me a flight", sampleResponse(t)))

	items, err := store.LoadInputHistory(ctx, "session-1")
	require.NoError(t, err)
	// One user message plus one assistant message.
	require.Len(t, items, 2)
	assert.NotNil(t, items[1].OfOutputMessage)
}

func TestLoadInputHistoryEmptySession(t *testing.T) {
	store := newTestStore(t)

	items, err := store.LoadInputHistory(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOutputToInputSkipsUnknownTypes(t *testing.T) {
	raw := `{
		"output": [
			{"type": "message", "id": "m", "role": "assistant", "status": "completed",
			 "content": [{"type": "output_text", "text": "hi", "annotations": []}]},
			{"type": "function_call", "id": "f", "call_id": "c", "status": "completed",
			 "name": "get_user_info", "arguments": "{}"},
			{"type": "image_generation_call", "id": "i"}
		]
	}`
	var resp responses.Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	items := OutputToInput(resp.Output)
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].OfOutputMessage)
	assert.NotNil(t, items[1].OfFunctionCall)
}
