package vision

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedIdentifier struct {
	errs  []error
	reply string
	calls int
}

func (s *scriptedIdentifier) IdentifyPlant(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return s.reply, nil
}

func noWait() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func TestRetryingIdentifierRecoversFromTransientErrors(t *testing.T) {
	inner := &scriptedIdentifier{
		errs: []error{
			&StatusError{Provider: "openai", StatusCode: http.StatusServiceUnavailable, Err: errors.New("overloaded")},
			&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		},
		reply: "{}",
	}
	r := NewRetryingIdentifier(inner, RetryConfig{MaxTries: 3, NewBackOff: noWait})

	text, err := r.IdentifyPlant(context.Background(), "https://x/leaf.jpg")
	require.NoError(t, err)
	assert.Equal(t, "{}", text)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingIdentifierStopsAtMaxTries(t *testing.T) {
	transient := &StatusError{Provider: "openai", StatusCode: http.StatusTooManyRequests, Err: errors.New("slow down")}
	inner := &scriptedIdentifier{errs: []error{transient, transient, transient, transient}}
	r := NewRetryingIdentifier(inner, RetryConfig{MaxTries: 2, NewBackOff: noWait})

	_, err := r.IdentifyPlant(context.Background(), "https://x/leaf.jpg")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingIdentifierDoesNotRetryPermanentErrors(t *testing.T) {
	tests := []error{
		ErrEmptyResponse,
		&StatusError{Provider: "openai", StatusCode: http.StatusUnauthorized, Err: errors.New("bad key")},
		ErrUnsupportedImage,
	}

	for _, permanent := range tests {
		inner := &scriptedIdentifier{errs: []error{permanent}}
		r := NewRetryingIdentifier(inner, RetryConfig{MaxTries: 5, NewBackOff: noWait})

		_, err := r.IdentifyPlant(context.Background(), "https://x/leaf.jpg")
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, inner.calls)
	}
}

func TestRetryingIdentifierDefaults(t *testing.T) {
	r := NewRetryingIdentifier(&scriptedIdentifier{}, RetryConfig{})

	assert.Equal(t, uint(1), r.maxTries)
	assert.Equal(t, 30*time.Second, r.maxElapsed)
	assert.NotNil(t, r.newBackOff())
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(context.Canceled))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.True(t, IsTransient(&StatusError{StatusCode: http.StatusBadGateway}))
	assert.True(t, IsTransient(&StatusError{StatusCode: http.StatusRequestTimeout}))
	assert.False(t, IsTransient(&StatusError{StatusCode: http.StatusBadRequest}))
	assert.False(t, IsTransient(errors.New("boom")))
}
