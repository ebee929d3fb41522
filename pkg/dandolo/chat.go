package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChatService issues chat completion requests.
type ChatService struct {
	client *Client
}

// CompletionRequest describes one chat completion call. Zero-value optional
// fields are omitted from the wire body; the server applies its own
// defaults and rejects out-of-range values (surfaced as validation errors —
// no ranges are checked client-side).
type CompletionRequest struct {
	// Model selects a model by id. Empty means ModelAutoSelect: the server
	// routes the request itself.
	Model    string
	Messages []ChatMessage

	MaxTokens   *int
	Temperature *float64

	// Extra carries additional generation parameters straight through to
	// the wire body. Reserved keys (model, messages, stream) and the named
	// optional parameters always win on collision.
	Extra map[string]any
}

// Create performs a chat completion. Streaming is not supported; every
// request is sent with stream disabled.
func (s *ChatService) Create(ctx context.Context, req CompletionRequest) (*ChatCompletion, error) {
	model := req.Model
	if model == "" {
		model = ModelAutoSelect
	}

	body := make(map[string]any, len(req.Extra)+5)
	for k, v := range req.Extra {
		body[k] = v
	}
	if req.MaxTokens != nil {
		body["max_tokens"] = *req.MaxTokens
	}
	if req.Temperature != nil {
		body["temperature"] = *req.Temperature
	}
	body["model"] = model
	body["messages"] = req.Messages
	body["stream"] = false

	raw, err := s.client.post(ctx, "/v1/chat/completions", body)
	if err != nil {
		return nil, err
	}

	var completion ChatCompletion
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, fmt.Errorf("dandolo: failed to decode completion response: %w", err)
	}

	return &completion, nil
}
