package llm

import (
	"context"

	"github.com/openai/openai-go/v3/responses"
)

// Provider is the request/response boundary to the language model. The agent
// loop is written against it so tests can substitute a deterministic fake.
type Provider interface {
	ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error)
}
