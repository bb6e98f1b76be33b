package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// MaxTokens bounds the completion length for every collaborator call.
const MaxTokens = 1024

const systemPrompt = "You are PawAlert, an assistant for an animal rescue service. " +
	"Answer with practical, compassionate advice for people reporting injured or abused animals. " +
	"Keep answers short and concrete."

// Request is a single completion request to the collaborator.
//
// The prompt is sent as the last user message. When image data is attached,
// it is embedded base64-encoded into the same message so that vision-capable
// models can inspect the reported animal.
type Request struct {
	Prompt    string
	ImageData []byte
	ImageMIME string
}

type Client struct {
	client *openai.Client
}

// NewClient creates a collaborator client. baseURL overrides the API endpoint
// when non-empty, which the tests use to point the client at a stub server.
func NewClient(apiKey, baseURL string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
	}
}

// Complete performs a synchronous completion and returns the generated text.
//
// The caller is expected to bound the call with a context deadline and to
// treat any returned error as recoverable.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	var (
		model   = openai.GPT3Dot5Turbo1106
		message = openai.ChatCompletionMessage{ //nolint:exhaustruct // this is better for readability
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}
	)

	if len(req.ImageData) > 0 {
		model = openai.GPT4VisionPreview
		imageURL := fmt.Sprintf("data:%s;base64,%s", req.ImageMIME,
			base64.StdEncoding.EncodeToString(req.ImageData))
		message = openai.ChatCompletionMessage{ //nolint:exhaustruct // this is better for readability
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: req.Prompt,
				},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    imageURL,
						Detail: openai.ImageURLDetailAuto,
					},
				},
			},
		}
	}

	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     model,
			MaxTokens: MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				message,
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
