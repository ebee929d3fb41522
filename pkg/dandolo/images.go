package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
)

// ImagesService issues image generation requests.
type ImagesService struct {
	client *Client
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Steps  int    `json:"steps,omitempty"`
}

// GeneratedImage is one output image, delivered by URL or inline.
type GeneratedImage struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

// ImageResponse is the response to an image generation request.
type ImageResponse struct {
	Created int64            `json:"created"`
	Data    []GeneratedImage `json:"data"`
}

// Generate produces images for the given prompt.
func (s *ImagesService) Generate(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	raw, err := s.client.post(ctx, "/v1/images/generations", req)
	if err != nil {
		return nil, err
	}

	var resp ImageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("dandolo: failed to decode image response: %w", err)
	}

	return &resp, nil
}
