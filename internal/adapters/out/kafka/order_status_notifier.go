// Package kafka publishes order status events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"bookstore/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 5 * time.Second
	batchTimeout        = 10 * time.Millisecond
)

var (
	// ErrQueueFull is returned when events arrive faster than the broker accepts them.
	ErrQueueFull = errors.New("kafka: order status queue is full")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("kafka: order status notifier is closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderStatusChangedEvent is the JSON payload written for every committed transition.
type OrderStatusChangedEvent struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    *string   `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderStatusNotifier implements ports.Notifier on top of a kafka-go writer. Events are
// queued in memory and written by a single background goroutine, so a slow or
// unreachable broker never holds up the caller. Messages are keyed by order id so the
// events of one order stay in one partition and keep their order.
//
// Example:
//
//	notifier := kafka.NewOrderStatusNotifier([]string{"localhost:9092"}, "order.status.changed", logger)
//	defer notifier.Close()
type OrderStatusNotifier struct {
	writer       messageWriter
	writeTimeout time.Duration
	logger       *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message

	stop context.CancelFunc
	ctx  context.Context
	done chan struct{}
}

// NewOrderStatusNotifier creates a notifier writing to topic on brokers and starts its
// dispatch loop.
func NewOrderStatusNotifier(brokers []string, topic string, logger *slog.Logger) *OrderStatusNotifier {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           defaultWriteTimeout,
	}
	return newOrderStatusNotifier(writer, defaultQueueSize, defaultWriteTimeout, logger)
}

func newOrderStatusNotifier(
	writer messageWriter,
	queueSize int,
	writeTimeout time.Duration,
	logger *slog.Logger,
) *OrderStatusNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, stop := context.WithCancel(context.Background())
	n := &OrderStatusNotifier{
		writer:       writer,
		writeTimeout: writeTimeout,
		logger:       logger.With("component", "order_status_notifier"),
		queue:        make(chan kafka.Message, queueSize),
		ctx:          ctx,
		stop:         stop,
		done:         make(chan struct{}),
	}
	go n.dispatch()
	return n
}

// NotifyStatusChanged queues the event and returns immediately. Delivery failures are
// logged by the dispatch loop; only a full queue or a closed notifier is reported here.
func (n *OrderStatusNotifier) NotifyStatusChanged(_ context.Context, event ports.OrderStatusChanged) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrClosed
	}

	select {
	case n.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and flushes the queue. Writes still pending after one
// write timeout are abandoned.
func (n *OrderStatusNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	timer := time.NewTimer(n.writeTimeout)
	defer timer.Stop()
	select {
	case <-n.done:
	case <-timer.C:
		n.stop()
		<-n.done
	}
	n.stop()

	return n.writer.Close()
}

func (n *OrderStatusNotifier) dispatch() {
	defer close(n.done)

	for msg := range n.queue {
		ctx, cancel := context.WithTimeout(n.ctx, n.writeTimeout)
		if err := n.writer.WriteMessages(ctx, msg); err != nil {
			n.logger.Warn("order status event not delivered", "order_id", string(msg.Key), "error", err)
		}
		cancel()
	}
}

func newMessage(event ports.OrderStatusChanged) (kafka.Message, error) {
	payload := OrderStatusChangedEvent{
		EventID:    uuid.NewString(),
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.ActorID != nil {
		actor := event.ActorID.String()
		payload.ActorID = &actor
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: value,
		Time:  payload.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("OrderStatusChanged")},
		},
	}, nil
}
