package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasVLANQ/calendar/internal/model"
)

func recv(t *testing.T, ch <-chan StateChange) StateChange {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state change")
		return StateChange{}
	}
}

func TestBrokerDeliversToSubscriber(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe()
	defer unsub()

	p := &model.UserProfile{ID: 42, Email: "alice@example.com"}
	b.Publish(StateChange{Kind: SignedIn, UserID: 42, Profile: p})

	ev := recv(t, ch)
	assert.Equal(t, SignedIn, ev.Kind)
	assert.Equal(t, uint64(42), ev.UserID)
	require.NotNil(t, ev.Profile)
	assert.Equal(t, "alice@example.com", ev.Profile.Email)
}

func TestBrokerSignedOutCarriesNoProfile(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(StateChange{Kind: SignedOut, UserID: 42})
	ev := recv(t, ch)
	assert.Equal(t, SignedOut, ev.Kind)
	assert.Nil(t, ev.Profile)
}

func TestBrokerFansOutToAllSubscribers(t *testing.T) {
	b := NewBroker()
	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.Publish(StateChange{Kind: SignedIn, UserID: 1})
	assert.Equal(t, uint64(1), recv(t, ch1).UserID)
	assert.Equal(t, uint64(1), recv(t, ch2).UserID)
}

func TestBrokerUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe()
	unsub()

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")

	// Publishing after unsubscribe must not panic.
	b.Publish(StateChange{Kind: SignedIn, UserID: 1})

	// Unsubscribing twice is safe.
	unsub()
}

func TestBrokerDoesNotBlockOnSlowSubscriber(t *testing.T) {
	b := NewBroker()
	_, unsub := b.Subscribe() // never drained
	defer unsub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			b.Publish(StateChange{Kind: SignedIn, UserID: uint64(i)})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a subscriber that stopped draining")
	}
}
