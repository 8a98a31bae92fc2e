package events

import "testing"

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(TopicAvatarChanged)
	defer cancel()

	bus.Publish(TopicAvatarChanged)

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending signal after publish")
	}
}

func TestPublishIsCoalesced(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(TopicAvatarChanged)
	defer cancel()

	bus.Publish(TopicAvatarChanged)
	bus.Publish(TopicAvatarChanged)
	bus.Publish(TopicAvatarChanged)

	<-ch
	select {
	case <-ch:
		t.Fatal("expected repeated publishes to coalesce into one signal")
	default:
	}
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("other.topic")
	defer cancel()

	bus.Publish(TopicAvatarChanged)

	select {
	case <-ch:
		t.Fatal("subscriber of another topic must not be signalled")
	default:
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(TopicAvatarChanged)
	cancel()

	bus.Publish(TopicAvatarChanged)

	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive signals")
	default:
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	bus := NewBus()
	bus.Publish(TopicAvatarChanged)
}
