package event

import (
	"context"
	"errors"
	"testing"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishToSubscriber(t *testing.T) {
	bus := NewMemoryBus()
	received := 0

	bus.Subscribe(Type(domain.EventTypeLevelUp), func(ctx context.Context, e Event) error {
		received++
		payload, ok := e.Payload.(LevelUpPayloadV1)
		require.True(t, ok)
		assert.Equal(t, "user-1", payload.UserID)
		assert.Equal(t, 3, payload.NewLevel)
		return nil
	})

	err := bus.Publish(context.Background(), NewLevelUpEvent("user-1", 2, 3, 900))
	require.NoError(t, err)
	assert.Equal(t, 1, received)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewManagerHiredEvent("user-1", "biz-1", 500))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0

	bus.Subscribe(Type(domain.EventTypeGameCompleted), func(ctx context.Context, e Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(Type(domain.EventTypeGameCompleted), func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewGameCompletedEvent("u", "b", "clicker", 10, 5))
	require.Error(t, err)
	assert.Equal(t, 2, calls, "all handlers run even when one fails")
}
