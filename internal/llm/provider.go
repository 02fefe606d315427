package llm

import (
	"context"
	"encoding/json"
)

// Provider is the gateway to a language model. Grading flows build a Request,
// call Generate, and decode the structured JSON they asked for.
type Provider interface {
	// Generate sends one request to the model. When the request carries a
	// Schema, the returned Content is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Grading flows send a single user message
	// carrying the material to grade.
	Messages []Message

	// Schema, when set, makes the provider request structured output and
	// validate the result against it. When nil, Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]. Zero (the default) keeps grading deterministic.
	Temperature float64
}

// Schema names a JSON structure the model must produce.
type Schema struct {
	// Name identifies the schema: tool name for Anthropic, schema name for
	// OpenAI. Kebab-case, e.g. "explanation-grade".
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema, as a map.
	Definition map[string]any
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage wraps content as a single user turn, the shape every grading
// request uses.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: schema-validated JSON when the
	// request carried a Schema, raw text otherwise.
	Content json.RawMessage

	// Usage counts the tokens billed for the call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
