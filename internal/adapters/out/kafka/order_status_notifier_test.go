package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/logging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *mockWriter) Close() error { return m.Called().Error(0) }

// gatedWriter blocks every write until release is closed or the write context ends.
type gatedWriter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedWriter() *gatedWriter {
	return &gatedWriter{started: make(chan struct{}), release: make(chan struct{})}
}

func (w *gatedWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	w.once.Do(func() { close(w.started) })
	select {
	case <-w.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *gatedWriter) Close() error { return nil }

func statusEvent() ports.OrderStatusChanged {
	return ports.OrderStatusChanged{
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		From:       order.PendingConfirmation,
		To:         order.Cancelled,
		OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderStatusNotifier_NotifyStatusChanged(t *testing.T) {
	writer := new(mockWriter)
	notifier := newOrderStatusNotifier(writer, 8, time.Second, nil)

	actor := kernel.NewUUID()
	event := ports.OrderStatusChanged{
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		From:       order.Confirmed,
		To:         order.OutForDelivery,
		ActorID:    &actor,
		OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.FixedZone("UTC+2", 7200)),
	}

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()
	writer.On("Close").Return(nil).Once()

	require.NoError(t, notifier.NotifyStatusChanged(t.Context(), event))
	require.NoError(t, notifier.Close())

	require.Len(t, sent, 1)
	assert.Equal(t, event.OrderID.String(), string(sent[0].Key))

	var payload OrderStatusChangedEvent
	require.NoError(t, json.Unmarshal(sent[0].Value, &payload))
	assert.NotEmpty(t, payload.EventID)
	assert.Equal(t, "Confirmed", payload.From)
	assert.Equal(t, "OutForDelivery", payload.To)
	require.NotNil(t, payload.ActorID)
	assert.Equal(t, actor.String(), *payload.ActorID)
	assert.Equal(t, time.UTC, payload.OccurredAt.Location())
	assert.True(t, event.OccurredAt.Equal(payload.OccurredAt))
	writer.AssertExpectations(t)
}

func TestOrderStatusNotifier_BlockedBrokerDoesNotDelayCaller(t *testing.T) {
	writer := newGatedWriter()
	var logs bytes.Buffer
	notifier := newOrderStatusNotifier(writer, 8, 500*time.Millisecond, logging.NewWithWriter(&logs, slog.LevelInfo))

	start := time.Now()
	require.NoError(t, notifier.NotifyStatusChanged(t.Context(), statusEvent()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	<-writer.started
	require.NoError(t, notifier.Close())
	assert.Contains(t, logs.String(), "order status event not delivered")
}

func TestOrderStatusNotifier_FullQueueIsReported(t *testing.T) {
	writer := newGatedWriter()
	notifier := newOrderStatusNotifier(writer, 1, time.Second, nil)
	defer func() {
		close(writer.release)
		_ = notifier.Close()
	}()

	require.NoError(t, notifier.NotifyStatusChanged(t.Context(), statusEvent()))
	<-writer.started
	require.NoError(t, notifier.NotifyStatusChanged(t.Context(), statusEvent()))

	err := notifier.NotifyStatusChanged(t.Context(), statusEvent())

	require.ErrorIs(t, err, ErrQueueFull)
}

func TestOrderStatusNotifier_ClosedRejectsEvents(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Close").Return(nil).Once()
	notifier := newOrderStatusNotifier(writer, 1, time.Second, nil)

	require.NoError(t, notifier.Close())
	require.NoError(t, notifier.Close())

	err := notifier.NotifyStatusChanged(t.Context(), statusEvent())

	require.ErrorIs(t, err, ErrClosed)
	writer.AssertNumberOfCalls(t, "Close", 1)
}

func TestOrderStatusNotifier_WriteErrorsAreLogged(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(kafka.LeaderNotAvailable).Once()
	writer.On("Close").Return(nil).Once()
	var logs bytes.Buffer
	notifier := newOrderStatusNotifier(writer, 1, time.Second, logging.NewWithWriter(&logs, slog.LevelInfo))
	event := statusEvent()

	require.NoError(t, notifier.NotifyStatusChanged(t.Context(), event))
	require.NoError(t, notifier.Close())

	assert.Contains(t, logs.String(), event.OrderID.String())
	assert.Contains(t, logs.String(), kafka.LeaderNotAvailable.Error())
}
