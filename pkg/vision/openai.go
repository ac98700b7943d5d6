package vision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type OpenAIIdentifier struct {
	client openai.Client
	model  string
}

// NewOpenAIIdentifier disables the SDK's own retries; RetryingIdentifier
// owns that policy.
func NewOpenAIIdentifier(apiKey, model, baseURL string, timeout time.Duration) *OpenAIIdentifier {
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIIdentifier{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (i *OpenAIIdentifier) IdentifyPlant(ctx context.Context, image string) (string, error) {
	completion, err := i.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: i.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(PlantPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: image,
				}),
			}),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "openai", StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", fmt.Errorf("vision: openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
