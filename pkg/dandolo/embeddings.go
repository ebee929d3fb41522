package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
)

// EmbeddingsService issues text embedding requests.
type EmbeddingsService struct {
	client *Client
}

// EmbeddingRequest describes one embedding call.
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// Embedding is one embedded input vector.
type Embedding struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingResponse is the response to an embedding request.
type EmbeddingResponse struct {
	Data  []Embedding `json:"data"`
	Usage *Usage      `json:"usage,omitempty"`
}

// Create embeds the given input text.
func (s *EmbeddingsService) Create(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	raw, err := s.client.post(ctx, "/v1/embeddings", req)
	if err != nil {
		return nil, err
	}

	var resp EmbeddingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("dandolo: failed to decode embedding response: %w", err)
	}

	return &resp, nil
}
