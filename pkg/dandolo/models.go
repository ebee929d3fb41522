package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
)

// ModelsService reads the model catalogue.
type ModelsService struct {
	client *Client
}

// List returns every model currently available through the network. An
// empty catalogue is a valid result, not an error.
func (s *ModelsService) List(ctx context.Context) ([]Model, error) {
	raw, err := s.client.get(ctx, "/v1/models")
	if err != nil {
		return nil, err
	}

	var listing struct {
		Data []Model `json:"data"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("dandolo: failed to decode model listing: %w", err)
	}

	return listing.Data, nil
}
