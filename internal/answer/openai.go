package answer

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is a small tier chosen for latency and cost, not
// capability; override with the ANSWER_MODEL environment value.
const DefaultModel = openai.GPT4oMini

const systemPrompt = "You are precise and concise."

// OpenAICompleter implements Completer against the OpenAI chat completion
// API with near-deterministic sampling.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter creates a completer for the given API key and model.
// An empty model selects DefaultModel.
func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAICompleter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete sends one chat completion request and returns the message text
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
