// Package auth carries the in-process sign-in/sign-out notification
// stream.  Handlers publish a tagged variant whenever a session starts
// or ends and any interested component subscribes with an explicit
// lifetime instead of hooking a global listener.
package auth

import (
	"sync"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// Kind tags the two session state changes.
type Kind int

const (
	SignedIn Kind = iota
	SignedOut
)

// StateChange is delivered to subscribers.  Profile is set for
// SignedIn; UserID is set for both variants.
type StateChange struct {
	Kind    Kind
	UserID  uint64
	Profile *model.UserProfile
}

// Broker fans out session state changes to subscribers.  Delivery is
// non-blocking: a subscriber that stops draining its channel misses
// updates rather than stalling the publisher.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan StateChange
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan StateChange)}
}

// Subscribe registers a new subscriber and returns its channel along
// with an unsubscribe function.  Calling unsubscribe closes the
// channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan StateChange, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan StateChange, 8)
	b.subs[id] = ch
	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, unsub
}

// Publish delivers a state change to every current subscriber.
func (b *Broker) Publish(ev StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
