package dandolo

// Message roles accepted by the chat completions endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ModelAutoSelect delegates model choice to the server's router.
const ModelAutoSelect = "auto-select"

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// Usage reports token counts for a completion. Totals come from the server
// and are not re-derived client-side.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one generated alternative in a completion response.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// ChatCompletion is the response to a chat completion request.
type ChatCompletion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Model describes one model available through the network.
type Model struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	Created       int64  `json:"created"`
	OwnedBy       string `json:"owned_by"`
	Type          string `json:"type,omitempty"`
	ContextLength int    `json:"context_length,omitempty"`
}

// Key classes, derived from the key prefix.
const (
	KeyTypeDeveloper = "developer"
	KeyTypeAgent     = "agent"
)

// Default daily quotas per key class. These are client-side constants, not
// fetched from the server; real consumption comes from GetBalance.
const (
	DailyLimitDeveloper = 500
	DailyLimitAgent     = 5000
)

// UsageStatusUnsupported marks usage figures the client cannot fetch. There
// is no per-key accounting endpoint behind ValidateKey, so it never reports
// real consumption.
const UsageStatusUnsupported = "unsupported"

// KeyValidation is the best-effort report produced by ValidateKey. KeyType
// comes from the key prefix alone, and UsageStatus is always
// UsageStatusUnsupported: callers needing real consumption figures must use
// GetBalance instead.
type KeyValidation struct {
	IsValid     bool   `json:"is_valid"`
	KeyType     string `json:"key_type,omitempty"`
	DailyLimit  int    `json:"daily_limit,omitempty"`
	UsageStatus string `json:"usage_status"`
}

// Balance reports real key consumption from the accounting endpoint.
type Balance struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}
