package vision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	ErrEmptyResponse     = errors.New("vision: empty response from AI service")
	ErrMalformedResponse = errors.New("vision: AI response is not valid plant JSON")
	ErrInvalidAnalysis   = errors.New("vision: AI response has invalid plant fields")
	ErrUnsupportedImage  = errors.New("vision: unsupported image reference")
)

type (
	// Identifier sends an image reference with the plant prompt to a
	// multimodal model and returns the raw text reply.
	Identifier interface {
		IdentifyPlant(ctx context.Context, image string) (string, error)
	}

	// StatusError carries the HTTP status reported by the AI provider.
	StatusError struct {
		Provider   string
		StatusCode int
		Err        error
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("vision: %s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether a failed call is worth repeating.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrUnsupportedImage) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			return true
		default:
			return false
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

type Options struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
	HTTPClient *http.Client
	NewBackOff BackOffFactory
	MaxElapsed time.Duration
}

// New builds the identifier for the configured provider, wrapped in a
// bounded retry.
func New(ctx context.Context, opts Options) (Identifier, error) {
	var (
		identifier Identifier
		err        error
	)
	switch opts.Provider {
	case "gemini":
		httpClient := opts.HTTPClient
		if httpClient == nil && opts.Timeout > 0 {
			httpClient = &http.Client{Timeout: opts.Timeout}
		}
		identifier, err = NewGeminiIdentifier(ctx, opts.APIKey, opts.Model, httpClient)
	case "openai", "":
		identifier = NewOpenAIIdentifier(opts.APIKey, opts.Model, opts.BaseURL, opts.Timeout)
	default:
		return nil, fmt.Errorf("vision: unknown AI provider %q", opts.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRetryingIdentifier(identifier, RetryConfig{
		MaxTries:   opts.MaxRetries,
		MaxElapsed: opts.MaxElapsed,
		NewBackOff: opts.NewBackOff,
	}), nil
}
