package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	published := Event{
		ID:         "evt-1",
		Type:       TypeProductCreated,
		ResourceID: "prod-1",
		ActorID:    "admin-1",
		OccurredAt: time.Now().UTC(),
	}
	bus.Publish(published)

	select {
	case received := <-events:
		assert.Equal(t, published, received)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()

	unsubscribe()

	_, open := <-events
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{ID: "evt-2", Type: TypeMerchDeleted})
}

func TestBus_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Channel buffer is 100; publishing more must not deadlock.
	for i := 0; i < 250; i++ {
		bus.Publish(Event{ID: "evt", Type: TypeNewsPublished})
	}
}
