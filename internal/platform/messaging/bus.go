package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"picklog/internal/shared/events"
)

var ErrBusClosed = errors.New("event bus closed")

const subscriberBuffer = 128

type subscriber struct {
	group string
	ch    chan events.Envelope
}

// Bus is an in-process publish/subscribe adapter. Delivery is asynchronous and
// best effort: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscriber
	closed      bool
	wg          sync.WaitGroup
	done        chan struct{}
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]subscriber),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, event events.Envelope) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := append([]subscriber(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub.ch <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", sub.group,
				"event_id", event.EventID,
			)
		}
	}

	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"subscriber_count", len(subs),
	)
	return nil
}

// Subscribe registers handler for topic until ctx is cancelled or the bus is
// closed. Either way the subscriber leaves the topic first and then handles
// whatever is still buffered. Handler errors are logged and do not stop the
// consumer.
func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, events.Envelope) error,
) error {
	sub := subscriber{group: consumerGroup, ch: make(chan events.Envelope, subscriberBuffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, sub.ch)
				b.drain(context.WithoutCancel(ctx), topic, sub, handler)
				return
			case <-b.done:
				b.removeSubscriber(topic, sub.ch)
				b.drain(ctx, topic, sub, handler)
				return
			case event := <-sub.ch:
				b.handle(ctx, topic, sub.group, event, handler)
			}
		}
	}()
	return nil
}

// Close stops accepting events, lets subscribers finish what is buffered and
// waits for them to exit.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

func (b *Bus) drain(ctx context.Context, topic string, sub subscriber, handler func(context.Context, events.Envelope) error) {
	for {
		select {
		case event := <-sub.ch:
			b.handle(ctx, topic, sub.group, event, handler)
		default:
			return
		}
	}
}

func (b *Bus) handle(
	ctx context.Context,
	topic string,
	consumerGroup string,
	event events.Envelope,
	handler func(context.Context, events.Envelope) error,
) {
	if err := handler(ctx, event); err != nil {
		b.logger.Error("consumer handler failed",
			"event", "bus_consume_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"consumer_group", consumerGroup,
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
	}
}

func (b *Bus) removeSubscriber(topic string, target chan events.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]subscriber, 0, len(items))
	for _, item := range items {
		if item.ch != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}
