package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginSucceeded}))
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginFailed}))

	assert.Equal(t, []EventType{EventLoginSucceeded}, got)
}

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventCredentialRevoked, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventCredentialRevoked, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventCredentialRevoked})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
