//go:build unit

package voiceai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/breaker"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-agent", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))

		var spec voiceai.AgentSpec
		require.NoError(t, json.NewDecoder(r.Body).Decode(&spec))
		_ = json.NewEncoder(w).Encode(voiceai.Agent{ID: "agent_1", Name: spec.Name, VoiceID: spec.VoiceID})
	}))
	defer srv.Close()

	c := voiceai.NewClient(srv.URL, "key-123", time.Second)
	agent, err := c.CreateAgent(context.Background(), voiceai.AgentSpec{Name: "Recepción", VoiceID: "es-female"})
	require.NoError(t, err)
	assert.Equal(t, voiceai.Agent{ID: "agent_1", Name: "Recepción", VoiceID: "es-female"}, agent)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"voice_id is required"}`))
	}))
	defer srv.Close()

	c := voiceai.NewClient(srv.URL, "", time.Second)
	_, err := c.StartCall(context.Background(), voiceai.CallRequest{AgentID: "a"})

	var apiErr *voiceai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "voice_id is required", apiErr.Message)
	assert.True(t, apiErr.ClientFault())
}

func TestClient_ValidateWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Signature string `json:"signature"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": body.Signature == "good"})
	}))
	defer srv.Close()

	c := voiceai.NewClient(srv.URL, "", time.Second)
	assert.NoError(t, c.ValidateWebhook(context.Background(), []byte(`{}`), "good"))
	assert.ErrorIs(t, c.ValidateWebhook(context.Background(), []byte(`{}`), "bad"), voiceai.ErrInvalidWebhook)
}

func TestIsProviderHealthy(t *testing.T) {
	assert.True(t, voiceai.IsProviderHealthy(nil))
	assert.True(t, voiceai.IsProviderHealthy(voiceai.ErrInvalidWebhook))
	assert.True(t, voiceai.IsProviderHealthy(&voiceai.APIError{StatusCode: 404}))
	assert.False(t, voiceai.IsProviderHealthy(&voiceai.APIError{StatusCode: 429}))
	assert.False(t, voiceai.IsProviderHealthy(&voiceai.APIError{StatusCode: 503}))
	assert.False(t, voiceai.IsProviderHealthy(context.DeadlineExceeded))
}

func TestGuardedClient_TripsAndRecovers(t *testing.T) {
	var hits atomic.Int32
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	clk := clock.NewMockClock(time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC))
	b := breaker.New(breaker.Config{
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		IsSuccessful:     voiceai.IsProviderHealthy,
	}, clk)
	g := voiceai.NewGuardedClient(voiceai.NewClient(srv.URL, "", time.Second), b)
	ctx := context.Background()

	for range 3 {
		require.Error(t, g.EndCall(ctx, "call_1"))
	}
	require.Equal(t, breaker.StateOpen, b.State())
	require.Equal(t, int32(3), hits.Load())

	clk.Add(10 * time.Second)
	err := g.EndCall(ctx, "call_1")
	assert.True(t, errs.Is(err, errs.ErrServiceUnavailable))
	assert.Equal(t, int32(3), hits.Load(), "open breaker must not reach the network")

	clk.Add(21 * time.Second)
	healthy.Store(true)
	require.NoError(t, g.EndCall(ctx, "call_1"))
	assert.Equal(t, int32(4), hits.Load())
	assert.Equal(t, breaker.StateClosed, b.State())
	assert.Zero(t, b.Snapshot().FailureCount)
}

func TestGuardedClient_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	b := breaker.New(breaker.Config{FailureThreshold: 3, IsSuccessful: voiceai.IsProviderHealthy}, clock.NewMockClock(time.Now()))
	g := voiceai.NewGuardedClient(voiceai.NewClient(srv.URL, "", time.Second), b)

	for range 5 {
		_, err := g.CreateAgent(context.Background(), voiceai.AgentSpec{})
		require.Error(t, err)
	}
	assert.Equal(t, breaker.StateClosed, b.State())
	assert.Zero(t, b.Snapshot().FailureCount)
}

func TestGuardedClient_CancelledTrialDoesNotClose(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	clk := clock.NewMockClock(time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC))
	b := breaker.New(breaker.Config{
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		IsSuccessful:     voiceai.IsProviderHealthy,
	}, clk)
	g := voiceai.NewGuardedClient(voiceai.NewClient(srv.URL, "", time.Second), b)

	for range 3 {
		require.Error(t, g.EndCall(context.Background(), "call_1"))
	}
	clk.Add(31 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.EndCall(ctx, "call_1")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, breaker.StateOpen, b.State())
	assert.Equal(t, 3, b.Snapshot().FailureCount)

	// the provider is still failing; the next trial reaches it and reopens
	require.Error(t, g.EndCall(context.Background(), "call_1"))
	assert.Equal(t, int32(4), hits.Load())
	assert.Equal(t, breaker.StateOpen, b.State())
}
