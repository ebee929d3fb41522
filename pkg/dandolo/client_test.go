package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

// newMockAPI stands up a healthy mock backend covering every endpoint the
// client consumes. Chat completions echo the last user message back so
// tests can detect cross-request mixing.
func newMockAPI(t *testing.T) *Client {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Messages []ChatMessage `json:"messages"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":{"message":"bad body"}}`, http.StatusBadRequest)
			return
		}
		last := ""
		if len(body.Messages) > 0 {
			last = body.Messages[len(body.Messages)-1].Content
		}
		json.NewEncoder(w).Encode(ChatCompletion{
			ID:      "cmpl-mock",
			Object:  "chat.completion",
			Created: time.Now().Unix(),
			Model:   "mock-model",
			Choices: []Choice{{
				Index:        0,
				Message:      ChatMessage{Role: RoleAssistant, Content: "echo: " + last},
				FinishReason: "stop",
			}},
		})
	}).Methods("POST")
	r.HandleFunc("/v1/models", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"mock-model","object":"model","created":1,"owned_by":"dandolo"}]}`)
	}).Methods("GET")
	r.HandleFunc("/api/v1/balance", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"balance":{"used":120,"limit":5000,"remaining":4880}}`)
	}).Methods("GET")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	client, err := New("ak_agent_key_0123456789")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	client.SetBaseURL(server.URL).SetRetryDelay(1 * time.Millisecond)

	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{"developer key", "dk_0123456789abcdef", false},
		{"agent key", "ak_0123456789abcdef", false},
		{"wrong prefix", "sk_0123456789abcdef", true},
		{"no prefix", "0123456789abcdef", true},
		{"empty key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.apiKey)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("Expected client, got nil")
			}
			client.Close()
		})
	}
}

func TestNewDefaults(t *testing.T) {
	client, err := New("dk_0123456789abcdef")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer client.Close()

	if client.baseURL != defaultBaseURL {
		t.Errorf("Got base URL %q, want %q", client.baseURL, defaultBaseURL)
	}
	if client.maxRetries != 3 {
		t.Errorf("Got max retries %d, want 3", client.maxRetries)
	}
	if client.retryDelay != time.Second {
		t.Errorf("Got retry delay %v, want 1s", client.retryDelay)
	}
	if client.httpClient.Timeout != 60*time.Second {
		t.Errorf("Got timeout %v, want 60s", client.httpClient.Timeout)
	}
}

func TestKeyType(t *testing.T) {
	tests := []struct {
		apiKey string
		want   string
	}{
		{"dk_0123456789abcdef", KeyTypeDeveloper},
		{"ak_0123456789abcdef", KeyTypeAgent},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			client, err := New(tt.apiKey)
			if err != nil {
				t.Fatalf("New() returned error: %v", err)
			}
			defer client.Close()

			if got := client.KeyType(); got != tt.want {
				t.Errorf("Got key type %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetBaseURLTrimsTrailingSlash(t *testing.T) {
	client, err := New("dk_0123456789abcdef")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer client.Close()

	client.SetBaseURL("https://example.com/")
	if client.baseURL != "https://example.com" {
		t.Errorf("Got base URL %q, want trailing slash removed", client.baseURL)
	}
}

func TestConcurrentRequests(t *testing.T) {
	client := newMockAPI(t)
	defer client.Close()

	prompts := []string{"alpha", "beta", "gamma"}
	results := make([]*ChatCompletion, len(prompts))
	errs := make([]error, len(prompts))

	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			results[i], errs[i] = client.Chat.Create(context.Background(), CompletionRequest{
				Messages: []ChatMessage{{Role: RoleUser, Content: prompt}},
			})
		}(i, prompt)
	}
	wg.Wait()

	for i, prompt := range prompts {
		if errs[i] != nil {
			t.Fatalf("Request %d returned error: %v", i, errs[i])
		}
		want := "echo: " + prompt
		if got := results[i].Choices[0].Message.Content; got != want {
			t.Errorf("Request %d: got content %q, want %q", i, got, want)
		}
	}
}
