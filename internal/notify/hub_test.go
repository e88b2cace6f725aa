package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := NewHub()

	var first, second []Event
	h.Subscribe(func(ev Event) { first = append(first, ev) })
	h.Subscribe(func(ev Event) { second = append(second, ev) })

	at := time.Now()
	h.Publish("shipments", at)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "shipments", first[0].Collection)
	assert.True(t, at.Equal(first[0].At))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()

	var got []Event
	unsubscribe := h.Subscribe(func(ev Event) { got = append(got, ev) })

	h.Publish("trips", time.Now())
	unsubscribe()
	h.Publish("trips", time.Now())

	assert.Len(t, got, 1)
}

func TestNilHubPublishIsNoOp(t *testing.T) {
	var h *Hub

	assert.NotPanics(t, func() {
		h.Publish("expenses", time.Now())
	})
}
