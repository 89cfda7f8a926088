package voiceai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrInvalidWebhook = errors.New("webhook signature rejected by provider")

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("voice ai provider: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("voice ai provider: status=%d", e.StatusCode)
}

// ClientFault reports a request the provider refused as malformed. Those are
// the caller's problem and say nothing about provider health.
func (e *APIError) ClientFault() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

type AgentSpec struct {
	Name       string `json:"agent_name"`
	VoiceID    string `json:"voice_id"`
	Language   string `json:"language,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
	Prompt     string `json:"general_prompt,omitempty"`
}

type Agent struct {
	ID         string `json:"agent_id"`
	Name       string `json:"agent_name"`
	VoiceID    string `json:"voice_id"`
	Language   string `json:"language,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
	Prompt     string `json:"general_prompt,omitempty"`
}

type CallRequest struct {
	AgentID    string            `json:"override_agent_id"`
	FromNumber string            `json:"from_number"`
	ToNumber   string            `json:"to_number"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type Call struct {
	ID        string `json:"call_id"`
	AgentID   string `json:"agent_id"`
	Status    string `json:"call_status"`
	StartedAt int64  `json:"start_timestamp,omitempty"`
	EndedAt   int64  `json:"end_timestamp,omitempty"`
}

// Client talks to the voice AI provider's REST API.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *Client) CreateAgent(ctx context.Context, spec AgentSpec) (Agent, error) {
	var out Agent
	err := c.do(ctx, http.MethodPost, "/create-agent", spec, &out)
	return out, err
}

func (c *Client) UpdateAgent(ctx context.Context, id string, spec AgentSpec) (Agent, error) {
	var out Agent
	err := c.do(ctx, http.MethodPatch, "/update-agent/"+url.PathEscape(id), spec, &out)
	return out, err
}

func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/delete-agent/"+url.PathEscape(id), nil, nil)
}

func (c *Client) StartCall(ctx context.Context, req CallRequest) (Call, error) {
	var out Call
	err := c.do(ctx, http.MethodPost, "/v2/create-phone-call", req, &out)
	return out, err
}

func (c *Client) EndCall(ctx context.Context, callID string) error {
	return c.do(ctx, http.MethodPost, "/v2/end-call/"+url.PathEscape(callID), nil, nil)
}

// ValidateWebhook asks the provider to verify a webhook body against its signature.
func (c *Client) ValidateWebhook(ctx context.Context, body []byte, signature string) error {
	req := struct {
		Payload   string `json:"payload"`
		Signature string `json:"signature"`
	}{Payload: string(body), Signature: signature}
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodPost, "/verify-webhook", req, &out); err != nil {
		return err
	}
	if !out.Valid {
		return ErrInvalidWebhook
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var msg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(raw, &msg)
		if msg.Message == "" {
			msg.Message = msg.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
