package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const draftingSystemPrompt = "You are a legal drafting assistant. Produce a single HTML fragment " +
	"(headings, paragraphs, ordered lists) that can be inserted into a legal document. " +
	"Use placeholder brackets like [Party Name] for details you do not know. " +
	"Return only the fragment, no surrounding commentary."

// OpenAIResolver generates fragments through a chat-completion model.
type OpenAIResolver struct {
	client *openai.Client
	model  string
}

func NewOpenAIResolver(baseURL, apiKey, model string) *OpenAIResolver {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIResolver{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (r *OpenAIResolver) Resolve(ctx context.Context, prompt, docType string) (string, error) {
	resp, err := r.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: r.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: draftingSystemPrompt},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Document type: %s\nRequest: %s", docType, prompt),
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}
