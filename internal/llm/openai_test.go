package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

// openaiReply builds a chat completion response with one choice.
func openaiReply(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finishReason,
		}},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	reply := openaiReply(`{"comprehension_score":0.75,"feedback":"Covers the basics."}`, "stop")
	p := newTestOpenAIProvider(t, serveJSON(http.StatusOK, reply))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You grade written explanations of quiz topics.",
		Messages:  []Message{{Role: RoleUser, Content: "Grade this explanation."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("StopReason = %q, want end", resp.StopReason)
	}
}

func TestOpenAIProvider_TruncationSurfacesInStopReason(t *testing.T) {
	reply := openaiReply(`{"feedback":"cut off mid`, "length")
	p := newTestOpenAIProvider(t, serveJSON(http.StatusOK, reply))

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Grade this explanation."}},
		MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("StopReason = %q, want max_tokens", resp.StopReason)
	}
}

func TestOpenAIProvider_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(err error) bool {
				var rl *ErrRateLimit
				return errors.As(err, &rl)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(err error) bool {
				var unavail *ErrProviderUnavailable
				return errors.As(err, &unavail)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{
				"error": map[string]any{"type": "api_error", "message": tt.name},
			}
			p := newTestOpenAIProvider(t, serveJSON(tt.status, body))

			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("wrong error type: %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "http://localhost:8080/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("ModelID = %q, want gpt-4o", p.ModelID())
	}
}
