// Package genai wraps the text-generation capability. Callers get prompt-in,
// free-text-out with no structural guarantees; defensive parsing is on them.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/Tranv-IA/ContenAI/internal/config"
)

// Generator is the interface pipeline stages depend on.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Client drives an OpenAI-compatible chat model behind a rate limiter. The
// limiter serializes generation calls within a request so downstream rate
// limits hold even while data fetches run in parallel.
type Client struct {
	cm      model.ChatModel
	limiter *rate.Limiter
}

var _ Generator = (*Client)(nil)

// NewClient initializes the chat model and its limiter from config.
func NewClient(ctx context.Context, llm config.LLMConfig, conc config.ConcurrencyConfig) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: llm.BaseURL,
		APIKey:  llm.APIKey,
		Model:   llm.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init failed: %w", err)
	}

	limit := rate.Limit(float64(conc.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, conc.QPS)

	return &Client{cm: cm, limiter: limiter}, nil
}

// Generate sends one prompt and returns the raw completion text. There is no
// automatic retry; a failed call is the caller's cue to use its fallback.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("limiter wait error: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// CleanJSON strips the markdown fences models wrap JSON in despite being told
// not to.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
