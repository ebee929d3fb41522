package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
)

// ValidateKey probes the key by listing models: a successful call implies
// the key is accepted, any API failure implies it is not. The key class and
// daily limit are derived from the key prefix alone, and UsageStatus is
// always UsageStatusUnsupported — this client has no per-key accounting
// endpoint behind validation. Use GetBalance for real consumption figures.
func (c *Client) ValidateKey(ctx context.Context) KeyValidation {
	if _, err := c.Models.List(ctx); err != nil {
		return KeyValidation{
			IsValid:     false,
			UsageStatus: UsageStatusUnsupported,
		}
	}

	keyType := c.KeyType()
	limit := DailyLimitDeveloper
	if keyType == KeyTypeAgent {
		limit = DailyLimitAgent
	}

	return KeyValidation{
		IsValid:     true,
		KeyType:     keyType,
		DailyLimit:  limit,
		UsageStatus: UsageStatusUnsupported,
	}
}

// GetBalance fetches real usage figures for the configured key from the
// accounting endpoint.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	raw, err := c.get(ctx, "/api/v1/balance")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Balance Balance `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("dandolo: failed to decode balance response: %w", err)
	}

	return &resp.Balance, nil
}
