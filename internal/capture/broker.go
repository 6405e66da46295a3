package capture

//go:generate $MOCKGEN -source=broker.go -destination=mocks/broker_mock.go

import (
	"context"
	"sync"

	"github.com/reqpeek/reqpeek/internal/logger"
)

// Subscriber receives captured records.
// Delivery is synchronous on the capturing call path, so implementations
// should return quickly.
type Subscriber interface {
	// OnRequest is called once per captured record.
	OnRequest(record *Record)
}

// Broker fans captured records out to registered subscribers.
// It replaces ambient lookup of a display instance with explicit
// registration: subscribers attach at construction time and detach
// at teardown.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Attach registers a subscriber. Attaching the same subscriber twice
// results in duplicate deliveries; callers are expected not to.
func (b *Broker) Attach(subscriber Subscriber) {
	if subscriber == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, subscriber)
}

// Detach removes a previously attached subscriber.
// Detaching an unknown subscriber is a no-op.
func (b *Broker) Detach(subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s == subscriber {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of attached subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}

// Publish delivers the record to every attached subscriber in attach order.
// Publishing a nil record or publishing with no subscribers is a silent no-op.
// A panicking subscriber must not break the capturing call path nor starve
// the remaining subscribers.
func (b *Broker) Publish(record *Record) {
	if record == nil {
		return
	}

	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	for _, subscriber := range subscribers {
		deliver(subscriber, record)
	}
}

func deliver(subscriber Subscriber, record *Record) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(context.Background(), "Subscriber panicked during delivery: %v", r)
		}
	}()

	subscriber.OnRequest(record)
}
