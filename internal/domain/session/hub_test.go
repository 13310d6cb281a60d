package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_SubscribePublishUnsubscribe(t *testing.T) {
	h := NewHub()

	var got []Event
	unsubscribe := h.Subscribe(func(e Event) { got = append(got, e) })
	assert.Equal(t, 1, h.Len())

	h.Publish(Event{Type: EventSignedIn, UserID: "u-1"})
	h.Publish(Event{Type: EventSignedOut, UserID: "u-1"})

	assert.Len(t, got, 2)
	assert.Equal(t, EventSignedIn, got[0].Type)
	assert.False(t, got[0].At.IsZero())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, h.Len())

	h.Publish(Event{Type: EventSignedIn, UserID: "u-1"})
	assert.Len(t, got, 2)
}

func TestHub_ListenerMayUnsubscribeDuringPublish(t *testing.T) {
	h := NewHub()

	var unsubscribe func()
	calls := 0
	unsubscribe = h.Subscribe(func(Event) {
		calls++
		unsubscribe()
	})

	h.Publish(Event{Type: EventSignedOut})
	h.Publish(Event{Type: EventSignedOut})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Len())
}

func TestHub_ConcurrentUse(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := h.Subscribe(func(Event) {})
			h.Publish(Event{Type: EventTokenRefreshed})
			u()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, h.Len())
}
