package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `1\. a\_b \*x\* \(y\)`, EscapeMarkdownV2("1. a_b *x* (y)"))
	assert.Equal(t, `\\ \!`, EscapeMarkdownV2(`\ !`))
	assert.Equal(t, "Привет", EscapeMarkdownV2("Привет"))
}

func TestHint(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Начните с сортировки"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret", BaseURL: srv.URL}, zap.NewNop())
	answer, err := c.Hint(context.Background(), "Реализовать быструю сортировку")
	require.NoError(t, err)

	assert.Equal(t, "Начните с сортировки", answer)
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Реализовать быструю сортировку")
}

func TestHintErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer empty" {
			_, _ = w.Write([]byte(`{"choices":[]}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{APIKey: "x", BaseURL: srv.URL}, zap.NewNop()).Hint(context.Background(), "t")
	require.Error(t, err)
	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
	assert.Contains(t, err.Error(), "rate limited")

	_, err = NewClient(Config{APIKey: "empty", BaseURL: srv.URL}, zap.NewNop()).Hint(context.Background(), "t")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}
