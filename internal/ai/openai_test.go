package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testMessages() []Message {
	return []Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	}
}

func TestOpenAIProvider_KeyValidation(t *testing.T) {
	p := NewOpenAIProvider("", "", "gpt-4o-mini")
	if _, err := p.Chat(context.Background(), testMessages(), GenParams{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("empty key: expected ErrNotConfigured, got %v", err)
	}

	p = NewOpenAIProvider("", "sk-abc\ndef", "gpt-4o-mini")
	if _, err := p.Chat(context.Background(), testMessages(), GenParams{}); !errors.Is(err, ErrBadAPIKey) {
		t.Fatalf("whitespace key: expected ErrBadAPIKey, got %v", err)
	}
}

func TestOpenAIProvider_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		p := NewOpenAIProvider(srv.URL, "sk-test", "gpt-4o-mini")
		_, err := p.Chat(context.Background(), testMessages(), GenParams{})
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestOpenAIProvider_OtherStatusIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "sk-test", "gpt-4o-mini")
	_, err := p.Chat(context.Background(), testMessages(), GenParams{})

	var apiErr *APIStatusError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIStatusError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
}

func TestOpenAIProvider_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("missing bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  hello there  "}}],
			"usage": {"total_tokens": 57}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "sk-test", "gpt-4o-mini")
	reply, err := p.Chat(context.Background(), testMessages(), GenParams{Temperature: 0.8, MaxTokens: 500})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply.Content != "hello there" {
		t.Fatalf("content not trimmed: %q", reply.Content)
	}
	if reply.TotalTokens != 57 {
		t.Fatalf("unexpected tokens: %d", reply.TotalTokens)
	}
}

func TestOpenAIProvider_ConnectionRefused(t *testing.T) {
	// a closed port: dial fails immediately
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenAIProvider(url, "sk-test", "gpt-4o-mini")
	_, err := p.Chat(context.Background(), testMessages(), GenParams{})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}
