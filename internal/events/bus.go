package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBufferSize = 32

// Bus is the in-process publish point for job status changes. Subscriptions
// are scoped to one owner; events belonging to other owners are filtered out
// before they reach the subscriber channel. Delivery is at-most-once: a
// subscriber that cannot keep up loses events, and a subscriber registered
// after a publish does not see it.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	forwarder   *EventProducer
}

type subscriber struct {
	ownerID uuid.UUID
	ch      chan JobEvent
}

type BusOption func(b *Bus)

// WithForwarder attaches an event producer which receives a copy of every
// published event, regardless of owner.
func WithForwarder(ep *EventProducer) BusOption {
	return func(b *Bus) {
		b.forwarder = ep
	}
}

func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subscribers: make(map[uint64]*subscriber),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Subscribe registers a subscription for ownerID's events and returns the
// delivery channel together with an unsubscribe func. Unsubscribe closes the
// channel.
func (b *Bus) Subscribe(ownerID uuid.UUID) (<-chan JobEvent, func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	sub := &subscriber{
		ownerID: ownerID,
		ch:      make(chan JobEvent, subscriberBufferSize),
	}
	b.subscribers[id] = sub
	b.mu.Unlock()

	return sub.ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(s.ch)
		}
	}
}

// Publish fans the event out to every matching subscriber. A full subscriber
// buffer drops the event for that subscriber only.
func (b *Bus) Publish(ctx context.Context, event JobEvent) {
	b.mu.RLock()
	for _, sub := range b.subscribers {
		if sub.ownerID != event.OwnerID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			zap.S().Named("event_bus").Warnw("subscriber buffer full, dropping event",
				"job_id", event.ID, "status", event.Status)
		}
	}
	b.mu.RUnlock()

	if b.forwarder != nil {
		data, err := json.Marshal(event)
		if err != nil {
			zap.S().Named("event_bus").Errorw("failed to marshal event", "error", err)
			return
		}
		if err := b.forwarder.Write(ctx, JobMessageKind, data); err != nil {
			zap.S().Named("event_bus").Errorw("failed to forward event", "error", err, "job_id", event.ID)
		}
	}
}
