package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/bestway-backend/internal/pkg/httpx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

func TestCompleteChatPayload(t *testing.T) {
	var gotPath, gotAuth string
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.NewNop(), Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Model() != "m" {
		t.Fatalf("model: want=m got=%s", c.Model())
	}
	if _, err := c.Complete(context.Background(), "sys", `{"a":1}`); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path: want=/v1/chat/completions got=%s", gotPath)
	}
	if gotAuth != "Bearer k" {
		t.Fatalf("auth: want=Bearer k got=%s", gotAuth)
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages: want=2 got=%d", len(msgs))
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Fatalf("system message: got=%v", first)
	}
	if got["temperature"] != float64(0) || got["max_tokens"] != float64(2000) || got["top_p"] != float64(1) {
		t.Fatalf("generation params: got=%v", got)
	}
}

func TestCompleteResponsesStyle(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("path: want=/v1/responses got=%s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.NewNop(), Config{BaseURL: srv.URL, APIKey: "k", Style: "responses"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Complete(context.Background(), "sys", "u"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, ok := got["input"]; !ok {
		t.Fatalf("responses payload missing input: %v", got)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(logger.NewNop(), Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := c.Complete(context.Background(), "s", "u")
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("want *HTTPError, got %T %v", err, err)
	}
	if !httpx.IsRateLimited(err) {
		t.Fatalf("IsRateLimited: want=true")
	}
	if he.Header.Get("Retry-After") != "2" {
		t.Fatalf("Retry-After: want=2 got=%q", he.Header.Get("Retry-After"))
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := NewClient(logger.NewNop(), Config{BaseURL: srv.URL, APIKey: "k", Timeout: 20 * time.Millisecond})
	_, err := c.Complete(context.Background(), "s", "u")
	if err == nil || !httpx.IsTimeout(err) {
		t.Fatalf("want timeout error, got %v", err)
	}
}

func TestProxyURL(t *testing.T) {
	u, err := ProxyURL("10.0.0.1", "3128", "user", "p@ss")
	if err != nil {
		t.Fatalf("ProxyURL: %v", err)
	}
	if u.Host != "10.0.0.1:3128" || u.User.Username() != "user" {
		t.Fatalf("ProxyURL: got=%s", u.Redacted())
	}
	if pw, _ := u.User.Password(); pw != "p@ss" {
		t.Fatalf("password: want=p@ss got=%s", pw)
	}
	none, err := ProxyURL("", "1", "", "")
	if err != nil || none != nil {
		t.Fatalf("empty host: want nil,nil got %v,%v", none, err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(logger.NewNop(), Config{}); err == nil {
		t.Fatalf("missing api key: expected error")
	}
	if _, err := NewClient(logger.NewNop(), Config{APIKey: "k", Style: "grpc"}); err == nil {
		t.Fatalf("unknown style: expected error")
	}
}
