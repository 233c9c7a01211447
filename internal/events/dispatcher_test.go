package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testEvent(eventType EventType) Event {
	return Event{
		ID:        "evt-1",
		Type:      eventType,
		SubjectID: "user-1",
		Timestamp: time.Now(),
	}
}

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventOrderCreated, func(_ context.Context, _ Event) error {
		t.Fatal("handler for a different event type must not run")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), testEvent(EventUserRegistered)))
	assert.Equal(t, []string{"first:user-1", "second:user-1"}, got)
}

func TestDispatcher_HandlerErrorIsLoggedNotFatal(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	secondRan := false
	d.Subscribe(EventOrderCreated, func(_ context.Context, _ Event) error {
		return errors.New("smtp unreachable")
	})
	d.Subscribe(EventOrderCreated, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), testEvent(EventOrderCreated)))
	assert.True(t, secondRan)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "order_created", entries[0].ContextMap()["event_type"])
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher(zap.NewNop())
	assert.NoError(t, d.Publish(context.Background(), testEvent(EventOrderStatusChanged)))
}
