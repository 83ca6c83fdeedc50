// Package backend is the single transport to the JayaStores backend API.
// Every other component calls through it; it attaches the session credential,
// decodes error envelopes and centralizes unauthorized handling. It has no
// knowledge of cart or order semantics.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type sessionKey struct{}

// sessionInfo travels in the request context so do() can attach the bearer
// credential and the unauthorized hook can identify which session to clear.
type sessionInfo struct {
	SID        string
	Credential string
}

// WithSession returns a context carrying the caller's session id and bearer
// credential. Calls made without one go out unauthenticated.
func WithSession(ctx context.Context, sid, credential string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionInfo{SID: sid, Credential: credential})
}

// SessionIDFrom extracts the session id placed by WithSession.
func SessionIDFrom(ctx context.Context) string {
	if info, ok := ctx.Value(sessionKey{}).(sessionInfo); ok {
		return info.SID
	}
	return ""
}

func credentialFrom(ctx context.Context) string {
	if info, ok := ctx.Value(sessionKey{}).(sessionInfo); ok {
		return info.Credential
	}
	return ""
}

// Client is the shared HTTP client for the backend API. A circuit breaker
// wraps the transport so a dead backend fails fast; failed calls are never
// retried here, callers decide whether the user re-triggers the action.
type Client struct {
	baseURL        string
	http           *http.Client
	breaker        *gobreaker.CircuitBreaker[*http.Response]
	onUnauthorized func(ctx context.Context)
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: "backend-api",
		}),
	}
}

// OnUnauthorized registers the hook invoked exactly once per 401 response,
// regardless of which operation triggered it. The original call still returns
// an error so the caller's own error path runs.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// errorEnvelope matches the backend's error body shape.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if reqErr != nil {
			return nil, reqErr
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if cred := credentialFrom(ctx); cred != "" {
			req.Header.Set("Authorization", "Bearer "+cred)
		}
		return c.http.Do(req)
	})
	if err != nil {
		return fault.Remote(op, 0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.Remote(op, resp.StatusCode, "", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		var env errorEnvelope
		_ = json.Unmarshal(data, &env)
		msg := env.text()
		if msg == "" {
			msg = "session is no longer valid, please sign in again"
		}
		return fault.Auth("%s", msg)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var env errorEnvelope
		_ = json.Unmarshal(data, &env)
		return fault.Remote(op, resp.StatusCode, env.text(), nil)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fault.Remote(op, resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}
