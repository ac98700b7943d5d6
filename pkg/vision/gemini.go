package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type generateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type GeminiIdentifier struct {
	generate   generateContentFunc
	httpClient *http.Client
	model      string
}

func NewGeminiIdentifier(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiIdentifier, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("vision: create genai client: %w", err)
	}
	return newGeminiIdentifier(client.Models.GenerateContent, httpClient, model), nil
}

func newGeminiIdentifier(generate generateContentFunc, httpClient *http.Client, model string) *GeminiIdentifier {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiIdentifier{
		generate:   generate,
		httpClient: httpClient,
		model:      model,
	}
}

func (i *GeminiIdentifier) IdentifyPlant(ctx context.Context, image string) (string, error) {
	mimeType, data, err := loadImage(ctx, i.httpClient, image)
	if err != nil {
		return "", err
	}

	res, err := i.generate(ctx, i.model, []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					Text: PlantPrompt,
				},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     data,
					},
				},
			},
		},
	}, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "gemini", StatusCode: apiErr.Code, Err: err}
		}
		return "", fmt.Errorf("vision: gemini generate content: %w", err)
	}

	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
