// Package verify runs the end-to-end integration checks an agent developer
// performs before going live: connectivity, key balance, model listing, chat
// completion, and error surfacing, plus optional image/embedding/latency
// probes.
package verify

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Alhambren/Dandolo-Prod/pkg/dandolo"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

// minKeyLength is the shortest key the backend issues; anything shorter is
// a paste error.
const minKeyLength = 20

// ValidateKeyFormat checks an API key's shape without a network call: a
// dk_/ak_ prefix and a minimum length.
func ValidateKeyFormat(apiKey string) bool {
	if apiKey == "" {
		return false
	}
	hasPrefix := strings.HasPrefix(apiKey, "dk_") || strings.HasPrefix(apiKey, "ak_")
	return hasPrefix && len(apiKey) >= minKeyLength
}

// Result is the outcome of one named check.
type Result struct {
	Name   string
	Passed bool
}

// Results preserves check order for the final report.
type Results []Result

// PassCount returns how many checks passed.
func (r Results) PassCount() int {
	n := 0
	for _, res := range r {
		if res.Passed {
			n++
		}
	}
	return n
}

// Tester drives the check suite against one configured client.
type Tester struct {
	client *dandolo.Client
	out    io.Writer
}

// NewTester wires a suite to a client and an output stream.
func NewTester(client *dandolo.Client, out io.Writer) *Tester {
	return &Tester{client: client, out: out}
}

func (t *Tester) printStatus(message, status string) {
	var line string
	switch status {
	case "success":
		line = styleSuccess.Render("[PASS] " + message)
	case "error":
		line = styleError.Render("[FAIL] " + message)
	case "warning":
		line = styleWarning.Render("[WARN] " + message)
	default:
		line = styleInfo.Render("[....] " + message)
	}
	fmt.Fprintln(t.out, line)
}

// TestConnection performs a minimal completion to prove end-to-end
// connectivity.
func (t *Tester) TestConnection(ctx context.Context) bool {
	t.printStatus("Testing API connection...", "info")

	maxTokens := 20
	completion, err := t.client.Chat.Create(ctx, dandolo.CompletionRequest{
		Messages:  []dandolo.ChatMessage{{Role: dandolo.RoleUser, Content: "Say 'Connection successful!'"}},
		MaxTokens: &maxTokens,
	})
	if err != nil {
		t.printStatus(fmt.Sprintf("Connection failed: %v", err), "error")
		return false
	}
	if len(completion.Choices) == 0 {
		t.printStatus("Connection test returned no choices", "error")
		return false
	}

	t.printStatus(fmt.Sprintf("Connection test passed: %s", completion.Choices[0].Message.Content), "success")
	return true
}

// CheckBalance reports current key usage against its limit.
func (t *Tester) CheckBalance(ctx context.Context) bool {
	t.printStatus("Checking API balance...", "info")

	balance, err := t.client.GetBalance(ctx)
	if err != nil {
		t.printStatus(fmt.Sprintf("Balance check failed: %v", err), "warning")
		return false
	}

	status := "success"
	usagePct := 0.0
	if balance.Limit > 0 {
		usagePct = float64(balance.Used) / float64(balance.Limit) * 100
		if usagePct >= 80 {
			status = "warning"
		}
	}
	t.printStatus(fmt.Sprintf("Usage: %d/%d (%.1f%%) - %d remaining",
		balance.Used, balance.Limit, usagePct, balance.Remaining), status)
	return true
}

// ListModels fetches the model catalogue and returns the ids found.
func (t *Tester) ListModels(ctx context.Context) []string {
	t.printStatus("Fetching available models...", "info")

	models, err := t.client.Models.List(ctx)
	if err != nil {
		t.printStatus(fmt.Sprintf("Models fetch failed: %v", err), "warning")
		return nil
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.ID)
	}

	preview := names
	suffix := ""
	if len(preview) > 5 {
		preview = preview[:5]
		suffix = "..."
	}
	t.printStatus(fmt.Sprintf("Found %d models: %s%s", len(names), strings.Join(preview, ", "), suffix), "success")
	return names
}

// TestChatCompletion runs a timed completion against the given model.
func (t *Tester) TestChatCompletion(ctx context.Context, model string) bool {
	if model == "" {
		model = dandolo.ModelAutoSelect
	}
	t.printStatus(fmt.Sprintf("Testing chat completion with %s...", model), "info")

	maxTokens := 50
	temperature := 0.7
	start := time.Now()
	completion, err := t.client.Chat.Create(ctx, dandolo.CompletionRequest{
		Model: model,
		Messages: []dandolo.ChatMessage{
			{Role: dandolo.RoleSystem, Content: "You are a helpful assistant. Be concise."},
			{Role: dandolo.RoleUser, Content: "What is 2+2? Answer in one sentence."},
		},
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		t.printStatus(fmt.Sprintf("Chat test failed: %v", err), "error")
		return false
	}
	if len(completion.Choices) == 0 {
		t.printStatus("Chat test returned no choices", "error")
		return false
	}

	content := completion.Choices[0].Message.Content
	if len(content) > 100 {
		content = content[:100] + "..."
	}
	tokens := "unknown"
	if completion.Usage != nil {
		tokens = fmt.Sprintf("%d", completion.Usage.TotalTokens)
	}
	t.printStatus(fmt.Sprintf("Chat test passed (%.2fs, %s tokens): %s", elapsed.Seconds(), tokens, content), "success")
	return true
}

// TestErrorHandling submits a request that must fail and checks the client
// surfaces a typed error rather than a success.
func (t *Tester) TestErrorHandling(ctx context.Context) bool {
	t.printStatus("Testing error handling...", "info")

	_, err := t.client.Chat.Create(ctx, dandolo.CompletionRequest{
		Model:    "invalid-model-name",
		Messages: []dandolo.ChatMessage{{Role: dandolo.RoleUser, Content: "test"}},
	})
	if err == nil {
		t.printStatus("Error handling test failed: invalid model was accepted", "warning")
		return false
	}

	t.printStatus(fmt.Sprintf("Error handling test passed: %v", err), "success")
	return true
}

// TestImageGeneration exercises the image endpoint.
func (t *Tester) TestImageGeneration(ctx context.Context) bool {
	t.printStatus("Testing image generation...", "info")

	resp, err := t.client.Images.Generate(ctx, dandolo.ImageRequest{
		Model:  "flux-schnell",
		Prompt: "A simple test image of a red apple",
		Width:  512,
		Height: 512,
		Steps:  4,
	})
	if err != nil {
		t.printStatus(fmt.Sprintf("Image generation failed: %v", err), "warning")
		return false
	}
	if len(resp.Data) == 0 {
		t.printStatus("Image generation returned no data", "warning")
		return false
	}

	t.printStatus("Image generation test passed", "success")
	return true
}

// TestEmbeddings exercises the embedding endpoint.
func (t *Tester) TestEmbeddings(ctx context.Context) bool {
	t.printStatus("Testing embeddings...", "info")

	resp, err := t.client.Embeddings.Create(ctx, dandolo.EmbeddingRequest{
		Model: "text-embedding-ada-002",
		Input: "This is a test sentence for embeddings.",
	})
	if err != nil {
		t.printStatus(fmt.Sprintf("Embeddings failed: %v", err), "warning")
		return false
	}
	if len(resp.Data) == 0 {
		t.printStatus("Embeddings returned no data", "warning")
		return false
	}

	t.printStatus(fmt.Sprintf("Embeddings test passed (vector length: %d)", len(resp.Data[0].Embedding)), "success")
	return true
}

// PerformanceTest issues numRequests sequential completions and reports
// latency statistics.
func (t *Tester) PerformanceTest(ctx context.Context, numRequests int) bool {
	t.printStatus(fmt.Sprintf("Running performance test (%d requests)...", numRequests), "info")

	maxTokens := 30
	var times []float64
	successful := 0

	for i := 0; i < numRequests; i++ {
		start := time.Now()
		_, err := t.client.Chat.Create(ctx, dandolo.CompletionRequest{
			Messages:  []dandolo.ChatMessage{{Role: dandolo.RoleUser, Content: fmt.Sprintf("Count from 1 to %d", i+1)}},
			MaxTokens: &maxTokens,
		})
		elapsed := time.Since(start).Seconds()

		if err != nil {
			fmt.Fprintf(t.out, "  Request %d: FAILED (%v)\n", i+1, err)
			continue
		}
		times = append(times, elapsed)
		successful++
		fmt.Fprintf(t.out, "  Request %d: %.2fs\n", i+1, elapsed)
	}

	if len(times) == 0 {
		t.printStatus("No successful requests in performance test", "error")
		return false
	}

	sort.Float64s(times)
	sum := 0.0
	for _, v := range times {
		sum += v
	}
	median := times[len(times)/2]
	if len(times)%2 == 0 {
		median = (times[len(times)/2-1] + times[len(times)/2]) / 2
	}

	t.printStatus("Performance Results:", "info")
	fmt.Fprintf(t.out, "   Success Rate: %.1f%%\n", float64(successful)/float64(numRequests)*100)
	fmt.Fprintf(t.out, "   Average: %.2fs\n", sum/float64(len(times)))
	fmt.Fprintf(t.out, "   Median: %.2fs\n", median)
	fmt.Fprintf(t.out, "   Range: %.2fs - %.2fs\n", times[0], times[len(times)-1])
	return true
}

// RunSuite executes the full check list and prints a summary report.
func (t *Tester) RunSuite(ctx context.Context, advanced bool) Results {
	fmt.Fprintln(t.out, styleHeader.Render("Dandolo API Integration Test Suite"))
	fmt.Fprintln(t.out, strings.Repeat("=", 60))

	results := Results{
		{Name: "connection", Passed: t.TestConnection(ctx)},
		{Name: "balance", Passed: t.CheckBalance(ctx)},
		{Name: "models", Passed: len(t.ListModels(ctx)) > 0},
		{Name: "chat", Passed: t.TestChatCompletion(ctx, dandolo.ModelAutoSelect)},
		{Name: "error handling", Passed: t.TestErrorHandling(ctx)},
	}

	if advanced {
		fmt.Fprintln(t.out, strings.Repeat("=", 60))
		t.printStatus("Running advanced tests...", "info")
		results = append(results,
			Result{Name: "image generation", Passed: t.TestImageGeneration(ctx)},
			Result{Name: "embeddings", Passed: t.TestEmbeddings(ctx)},
			Result{Name: "performance", Passed: t.PerformanceTest(ctx, 5)},
		)
	}

	fmt.Fprintln(t.out, strings.Repeat("=", 60))
	t.printStatus("Test Summary:", "info")
	for _, res := range results {
		status := "success"
		verdict := "PASS"
		if !res.Passed {
			status = "error"
			verdict = "FAIL"
		}
		t.printStatus(fmt.Sprintf("%s: %s", res.Name, verdict), status)
	}

	passed := results.PassCount()
	total := len(results)
	fmt.Fprintf(t.out, "\nOverall: %d/%d tests passed\n", passed, total)

	switch {
	case passed == total:
		t.printStatus("All tests passed! Your integration is ready.", "success")
	case float64(passed) >= float64(total)*0.8:
		t.printStatus("Most tests passed. Check failed tests above.", "warning")
	default:
		t.printStatus("Multiple tests failed. Check your API key and connection.", "error")
	}

	return results
}
