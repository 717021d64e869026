package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketEscalated, func(context.Context, Event) error {
		calls = append(calls, "escalated")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "TCK-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:TCK-1", "second:TCK-1"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketAssigned}))
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := 0
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error { ran++; return errA })
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error { ran++; return nil })
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error { ran++; return errB })

	err := d.Publish(context.Background(), Event{Type: EventTicketAssigned})
	assert.Equal(t, 3, ran)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestSubscribeDuringPublish(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		// must not deadlock: handlers run outside the lock
		d.Subscribe(EventTicketCreated, func(context.Context, Event) error { return nil })
		return nil
	})
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
}
