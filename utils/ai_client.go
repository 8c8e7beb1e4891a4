package utils

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	openaiChatURL = "https://api.openai.com/v1/chat/completions"
	openaiModel   = "gpt-4o-mini"
)

// AIClient generates task descriptions through an OpenAI-style chat
// completion endpoint.
type AIClient struct {
	apiKey  string
	baseURL string
	client  *resty.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewAIClient creates a client for the configured API key. An empty key
// is allowed here; callers must treat it as a missing-dependency error.
func NewAIClient(apiKey string) *AIClient {
	return &AIClient{
		apiKey:  apiKey,
		baseURL: openaiChatURL,
		client:  resty.New(),
	}
}

// Configured reports whether an API key is present
func (c *AIClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateDescription asks the model for a short task description based
// on the task title and optional context.
func (c *AIClient) GenerateDescription(ctx context.Context, title, context_ string) (string, error) {
	prompt := fmt.Sprintf("Write a concise task description (2-4 sentences) for a task titled %q.", title)
	if context_ != "" {
		prompt += " Additional context: " + context_
	}

	var result chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(chatRequest{
			Model: openaiModel,
			Messages: []chatMessage{
				{Role: "system", Content: "You write clear, actionable task descriptions for a project management tool."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&result).
		SetError(&result).
		Post(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("chat completion failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("chat completion failed with status %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
