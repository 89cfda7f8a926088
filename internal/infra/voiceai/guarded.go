package voiceai

//go:generate mockgen -destination=../../../tests/mock/voiceai/provider.go -package=voiceaimock tablekeeper/internal/infra/voiceai Provider

import (
	"context"
	"errors"

	"tablekeeper/internal/pkg/breaker"
)

// Provider is the set of outbound voice AI operations.
type Provider interface {
	CreateAgent(ctx context.Context, spec AgentSpec) (Agent, error)
	UpdateAgent(ctx context.Context, id string, spec AgentSpec) (Agent, error)
	DeleteAgent(ctx context.Context, id string) error
	StartCall(ctx context.Context, req CallRequest) (Call, error)
	EndCall(ctx context.Context, callID string) error
	ValidateWebhook(ctx context.Context, body []byte, signature string) error
}

// GuardedClient routes every provider call through one circuit breaker.
// While the breaker is open calls fail with breaker.ErrOpen and never reach the network.
type GuardedClient struct {
	inner   Provider
	breaker *breaker.Breaker
}

func NewGuardedClient(inner Provider, b *breaker.Breaker) *GuardedClient {
	return &GuardedClient{inner: inner, breaker: b}
}

// IsProviderHealthy treats rejected input and bad signatures as successful
// round trips; only transport errors, 5xx and 429 count against the provider.
func IsProviderHealthy(err error) bool {
	if err == nil || errors.Is(err, ErrInvalidWebhook) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ClientFault()
	}
	return false
}

func (g *GuardedClient) Breaker() *breaker.Breaker { return g.breaker }

func (g *GuardedClient) CreateAgent(ctx context.Context, spec AgentSpec) (Agent, error) {
	return breaker.Call(ctx, g.breaker, func(ctx context.Context) (Agent, error) {
		return g.inner.CreateAgent(ctx, spec)
	})
}

func (g *GuardedClient) UpdateAgent(ctx context.Context, id string, spec AgentSpec) (Agent, error) {
	return breaker.Call(ctx, g.breaker, func(ctx context.Context) (Agent, error) {
		return g.inner.UpdateAgent(ctx, id, spec)
	})
}

func (g *GuardedClient) DeleteAgent(ctx context.Context, id string) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.DeleteAgent(ctx, id)
	})
}

func (g *GuardedClient) StartCall(ctx context.Context, req CallRequest) (Call, error) {
	return breaker.Call(ctx, g.breaker, func(ctx context.Context) (Call, error) {
		return g.inner.StartCall(ctx, req)
	})
}

func (g *GuardedClient) EndCall(ctx context.Context, callID string) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.EndCall(ctx, callID)
	})
}

func (g *GuardedClient) ValidateWebhook(ctx context.Context, body []byte, signature string) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.ValidateWebhook(ctx, body, signature)
	})
}
