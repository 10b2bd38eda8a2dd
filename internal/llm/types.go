package llm

import (
	"context"

	"github.com/openai/openai-go"
)

type Provider interface {
	// Complete sends the system and user messages to the model and returns
	// a structured response. Tool calls requested by the model are surfaced
	// on the response rather than executed.
	Complete(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Tools       []openai.ChatCompletionToolParam

	// ForceTool names a tool the model must call, empty for auto
	ForceTool string
}

// ToolCall is a tool invocation requested by the model, with raw JSON
// arguments left for the caller to decode.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Response struct {
	Content  string
	ToolCall *ToolCall
	Usage    Usage
}
