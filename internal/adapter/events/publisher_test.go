package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() model.OrderEvent {
	return model.OrderEvent{
		Type:       model.EventOrderCreated,
		OrderID:    "o1",
		UserID:     "u1",
		Total:      decimal.RequireFromString("47.58"),
		Status:     model.OrderStatusPending,
		OccurredAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublisherNotify(t *testing.T) {
	writer := &recordingWriter{}
	p := &Publisher{writer: writer}

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "o1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.created", string(msg.Headers[0].Value))

	var decoded model.OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "u1", decoded.UserID)
	assert.True(t, decoded.Total.Equal(decimal.RequireFromString("47.58")))
}

func TestPublisherNotifyError(t *testing.T) {
	p := &Publisher{writer: &recordingWriter{err: errors.New("broker down")}}
	err := p.Notify(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish order event")
}

func TestDisabledPublisher(t *testing.T) {
	p := NewPublisher("")
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Notify(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
	assert.Equal(t, "kafka", p.Name())
}

func TestNewPublisherConfiguresWriter(t *testing.T) {
	p := NewPublisher("", "localhost:9092")
	require.True(t, p.Enabled())
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultTopic, w.Topic)
	assert.True(t, w.AllowAutoTopicCreation)
	assert.NoError(t, p.Close())
}

func TestNewPublisherProvider(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	lc := fxtest.NewLifecycle(t)
	p := newPublisher(publisherParams{Lifecycle: lc, Config: &config.Config{}, Logger: logger})
	assert.False(t, p.Enabled())

	lc = fxtest.NewLifecycle(t)
	p = newPublisher(publisherParams{
		Lifecycle: lc,
		Config:    &config.Config{KafkaBrokers: []string{"localhost:9092"}, OrderTopic: "orders"},
		Logger:    logger,
	})
	require.True(t, p.Enabled())
	lc.RequireStart()
	lc.RequireStop()
}
