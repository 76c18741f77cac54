// Package classify wraps the text-classification capability: inputs plus a
// handful of labeled examples go in, a predicted label with confidence per
// input comes out.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/Tranv-IA/ContenAI/internal/config"
)

// Example is one labeled training illustration.
type Example struct {
	Text  string
	Label string
}

// Result is the predicted label and confidence for one input, in input order.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier is the interface the ranker depends on.
type Classifier interface {
	Classify(ctx context.Context, inputs []string, examples []Example) ([]Result, error)
}

// Client performs few-shot classification over chat completions.
type Client struct {
	client *openai.Client
	model  string
}

var _ Classifier = (*Client)(nil)

// NewClient creates a classifier client.
func NewClient(cfg config.ClassifierConfig) *Client {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{client: &client, model: cfg.Model}
}

// Classify implements Classifier.
func (c *Client) Classify(ctx context.Context, inputs []string, examples []Example) ([]Result, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	prompt := buildPrompt(inputs, examples)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a text classifier. Respond with JSON only."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response from classifier")
	}

	var parsed struct {
		Results []Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(response.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	if len(parsed.Results) != len(inputs) {
		return nil, fmt.Errorf("classifier returned %d results for %d inputs", len(parsed.Results), len(inputs))
	}

	for i := range parsed.Results {
		if parsed.Results[i].Confidence < 0 {
			parsed.Results[i].Confidence = 0
		}
		if parsed.Results[i].Confidence > 1 {
			parsed.Results[i].Confidence = 1
		}
	}

	return parsed.Results, nil
}

func buildPrompt(inputs []string, examples []Example) string {
	seen := map[string]bool{}
	var labels []string
	var sb strings.Builder

	sb.WriteString("Classify each input text into one of the labels shown in the examples.\n\n")
	sb.WriteString("Examples:\n")
	for _, ex := range examples {
		if !seen[ex.Label] {
			seen[ex.Label] = true
			labels = append(labels, ex.Label)
		}
		fmt.Fprintf(&sb, "- %q -> %s\n", ex.Text, ex.Label)
	}
	sort.Strings(labels)

	sb.WriteString("\nAllowed labels: ")
	sb.WriteString(strings.Join(labels, ", "))

	sb.WriteString("\n\nRespond with JSON format, one result per input in order:\n")
	sb.WriteString(`{"results": [{"label": "label", "confidence": 0.95}]}`)
	sb.WriteString("\n\nInputs to classify:\n\n")
	for i, input := range inputs {
		fmt.Fprintf(&sb, "Input %d: %s\n", i+1, input)
	}

	return sb.String()
}
