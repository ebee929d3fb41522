package dandolo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestChatCreateDecodesChoicesInOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": "cmpl-1", "object": "chat.completion", "created": 1700000000,
			"model": "mock-model",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "first"}, "finish_reason": "stop"},
				{"index": 1, "message": {"role": "assistant", "content": "second"}, "finish_reason": "stop"},
				{"index": 2, "message": {"role": "assistant", "content": "third"}, "finish_reason": "length"}
			],
			"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
		}`)
	}))

	completion, err := client.Chat.Create(context.Background(), CompletionRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "three ways"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(completion.Choices) != len(want) {
		t.Fatalf("Got %d choices, want %d", len(completion.Choices), len(want))
	}
	for i, content := range want {
		if completion.Choices[i].Index != i {
			t.Errorf("Choice %d: got index %d", i, completion.Choices[i].Index)
		}
		if completion.Choices[i].Message.Content != content {
			t.Errorf("Choice %d: got content %q, want %q", i, completion.Choices[i].Message.Content, content)
		}
	}
	if completion.Usage == nil || completion.Usage.TotalTokens != 30 {
		t.Errorf("Got usage %+v, want total 30", completion.Usage)
	}
}

func TestChatCreateMinimalResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"hi"}}], "id":"x"}`)
	}))

	completion, err := client.Chat.Create(context.Background(), CompletionRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if completion.ID != "x" {
		t.Errorf("Got id %q, want x", completion.ID)
	}
	if got := completion.Choices[0].Message.Content; got != "hi" {
		t.Errorf("Got content %q, want hi", got)
	}
	if completion.Usage != nil {
		t.Errorf("Expected nil usage, got %+v", completion.Usage)
	}
}

func TestChatCreateBodyAssembly(t *testing.T) {
	maxTokens := 50
	temperature := 0.7

	tests := []struct {
		name string
		req  CompletionRequest
		want map[string]any
		omit []string
	}{
		{
			name: "defaults",
			req: CompletionRequest{
				Messages: []ChatMessage{{Role: RoleUser, Content: "hello"}},
			},
			want: map[string]any{"model": ModelAutoSelect, "stream": false},
			omit: []string{"max_tokens", "temperature"},
		},
		{
			name: "explicit parameters",
			req: CompletionRequest{
				Model:       "llama-3.3-70b",
				Messages:    []ChatMessage{{Role: RoleUser, Content: "hello"}},
				MaxTokens:   &maxTokens,
				Temperature: &temperature,
			},
			want: map[string]any{
				"model":       "llama-3.3-70b",
				"max_tokens":  float64(50),
				"temperature": 0.7,
			},
		},
		{
			name: "extra passthrough",
			req: CompletionRequest{
				Messages: []ChatMessage{{Role: RoleUser, Content: "hello"}},
				Extra:    map[string]any{"top_p": 0.9, "seed": 42},
			},
			want: map[string]any{"top_p": 0.9, "seed": float64(42)},
		},
		{
			name: "extras cannot override required fields",
			req: CompletionRequest{
				Messages: []ChatMessage{{Role: RoleUser, Content: "hello"}},
				Extra:    map[string]any{"model": "sneaky", "stream": true},
			},
			want: map[string]any{"model": ModelAutoSelect, "stream": false},
		},
		{
			name: "named parameters win over extras",
			req: CompletionRequest{
				Messages:  []ChatMessage{{Role: RoleUser, Content: "hello"}},
				MaxTokens: &maxTokens,
				Extra:     map[string]any{"max_tokens": 10},
			},
			want: map[string]any{"max_tokens": float64(50)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured map[string]any
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
					t.Errorf("Failed to decode request body: %v", err)
				}
				fmt.Fprint(w, `{"id":"x","choices":[]}`)
			}))

			if _, err := client.Chat.Create(context.Background(), tt.req); err != nil {
				t.Fatalf("Create returned error: %v", err)
			}

			for key, want := range tt.want {
				if got, ok := captured[key]; !ok || got != want {
					t.Errorf("Body[%q] = %v, want %v", key, got, want)
				}
			}
			for _, key := range tt.omit {
				if _, ok := captured[key]; ok {
					t.Errorf("Expected %q to be omitted from the body", key)
				}
			}
		})
	}
}
