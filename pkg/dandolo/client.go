// Package dandolo is a client for the Dandolo decentralized AI network.
// It exposes an OpenAI-compatible chat completion surface plus model listing
// and key validation, with typed errors and bounded retry on transient
// failures.
package dandolo

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL    = "https://api.dandolo.ai"
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second

	userAgent = "dandolo-go-sdk/1.0.0"
)

// Client talks to the Dandolo API. A single Client owns one underlying
// connection pool and is safe for concurrent use; configure it with the
// setters before issuing the first request and treat it as immutable after.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration

	Chat       *ChatService
	Models     *ModelsService
	Images     *ImagesService
	Embeddings *EmbeddingsService
}

// New creates a Client for the given API key. The key must carry a dk_
// (developer) or ak_ (agent) prefix; a malformed key fails here, before any
// network call.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("dandolo: API key is required")
	}
	if !strings.HasPrefix(apiKey, "dk_") && !strings.HasPrefix(apiKey, "ak_") {
		return nil, fmt.Errorf("dandolo: API key must start with 'dk_' (developer) or 'ak_' (agent)")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}

	c.Chat = &ChatService{client: c}
	c.Models = &ModelsService{client: c}
	c.Images = &ImagesService{client: c}
	c.Embeddings = &EmbeddingsService{client: c}

	log.Debug().
		Str("base_url", c.baseURL).
		Str("key_type", c.KeyType()).
		Msg("Dandolo client initialized")

	return c, nil
}

// SetBaseURL overrides the API host, for self-hosted or staging deployments.
func (c *Client) SetBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// SetTimeout sets the per-attempt request timeout. A timed-out attempt
// counts toward the retry budget.
func (c *Client) SetTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}

// SetMaxRetries sets how many additional attempts follow a transient
// failure (5xx, timeout, or connection error). Retries apply to POST as
// well as GET: the backend treats a duplicated completion as wasted spend,
// not a correctness hazard.
func (c *Client) SetMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// SetRetryDelay sets the base backoff delay; attempt k waits delay * 2^k.
func (c *Client) SetRetryDelay(d time.Duration) *Client {
	c.retryDelay = d
	return c
}

// KeyType returns the key class implied by the configured key's prefix.
func (c *Client) KeyType() string {
	if strings.HasPrefix(c.apiKey, "ak_") {
		return KeyTypeAgent
	}
	return KeyTypeDeveloper
}

// Close releases the client's idle connections. The Client must not be used
// after Close; an unclosed client holds its pool until process exit.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
