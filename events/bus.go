// Package events is a small in-process publish/subscribe bus. It replaces the
// ambient cross-view flags of the previous client with explicit invalidation
// signals routed through an injected bus instance.
package events

import "sync"

// TopicAvatarChanged signals that the cached profile image is stale.
const TopicAvatarChanged = "profile.avatar-changed"

type subscriber struct {
	topic string
	ch    chan struct{}
}

type Bus struct {
	mu   sync.Mutex
	subs map[int]subscriber
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]subscriber)}
}

// Subscribe registers interest in a topic. The returned channel carries one
// pending signal at most; a publish arriving while a signal is already pending
// is coalesced into it. The cancel func removes the subscription.
func (b *Bus) Subscribe(topic string) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = subscriber{topic: topic, ch: ch}

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
	return ch, cancel
}

// Publish notifies every subscriber of topic. It never blocks.
func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.topic != topic {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
