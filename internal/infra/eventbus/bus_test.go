//go:build unit

package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra/eventbus"
	"tablekeeper/tests/common/builder"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tableEvent(t *testing.T) event.TableStateChanged {
	t.Helper()
	before := builder.NewTableBuilder("T1").BuildDomain(t)
	after, err := before.ToMaintenance(builder.BaseDate)
	require.NoError(t, err)
	return event.TableChanged(before, after, event.ReasonMaintenance, builder.BaseDate)
}

func TestBus_DeliversByType(t *testing.T) {
	bus := eventbus.New(discard(), 8, 1)

	var mu sync.Mutex
	var tables []event.TableStateChanged
	var confirmed int
	var all []event.Kind
	eventbus.Subscribe(bus, "tables", func(_ context.Context, e event.TableStateChanged) error {
		mu.Lock()
		defer mu.Unlock()
		tables = append(tables, e)
		return nil
	})
	eventbus.Subscribe(bus, "confirmed", func(_ context.Context, _ event.ReservationConfirmed) error {
		mu.Lock()
		defer mu.Unlock()
		confirmed++
		return nil
	})
	bus.SubscribeAll("all", func(_ context.Context, e event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		all = append(all, e.Kind())
		return nil
	})

	bus.Start(context.Background())
	bus.Publish(tableEvent(t))
	require.NoError(t, bus.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, tables, 1)
	assert.Equal(t, table.StatusFree, tables[0].PreviousStatus)
	assert.Equal(t, table.StatusMaintenance, tables[0].Table.Status)
	assert.Zero(t, confirmed)
	assert.Equal(t, []event.Kind{event.KindTableStateChanged}, all)
	assert.Equal(t, uint64(1), bus.Published())
}

func TestBus_SubscriberFailuresAreIsolated(t *testing.T) {
	bus := eventbus.New(discard(), 8, 1)
	delivered := make(chan struct{}, 1)
	bus.SubscribeAll("panics", func(context.Context, event.Event) error { panic("boom") })
	bus.SubscribeAll("errors", func(context.Context, event.Event) error { return errors.New("nope") })
	bus.SubscribeAll("ok", func(context.Context, event.Event) error {
		delivered <- struct{}{}
		return nil
	})

	bus.Start(context.Background())
	bus.Publish(tableEvent(t))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy subscriber never ran")
	}
	require.NoError(t, bus.Stop(context.Background()))
	assert.Equal(t, uint64(2), bus.Failed())
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := eventbus.New(discard(), 1, 1)

	done := make(chan struct{})
	go func() {
		bus.Publish(tableEvent(t))
		bus.Publish(tableEvent(t))
		bus.Publish(tableEvent(t))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full buffer")
	}
	assert.Equal(t, uint64(1), bus.Published())
	assert.Equal(t, uint64(2), bus.Dropped())

	require.NoError(t, bus.Stop(context.Background()))
	bus.Publish(tableEvent(t))
	assert.Equal(t, uint64(3), bus.Dropped())
}

type fakePublisher struct {
	channel string
	message any
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func TestRedisRelay_Handle(t *testing.T) {
	pub := &fakePublisher{}
	relay := eventbus.NewRedisRelay(pub, "tablekeeper:events", discard())

	require.NoError(t, relay.Handle(context.Background(), tableEvent(t)))
	assert.Equal(t, "tablekeeper:events", pub.channel)

	raw, ok := pub.message.([]byte)
	require.True(t, ok)
	var envelope struct {
		Kind    string `json:"kind"`
		Payload struct {
			PreviousStatus string `json:"previousStatus"`
			Reason         string `json:"reason"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "table.state_changed", envelope.Kind)
	assert.Equal(t, "free", envelope.Payload.PreviousStatus)
	assert.Equal(t, "maintenance", envelope.Payload.Reason)

	pub.err = errors.New("connection refused")
	assert.Error(t, relay.Handle(context.Background(), tableEvent(t)))
}
