package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/kafka/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type event struct {
	Event     string `json:"event"`
	BookingID string `json:"booking_id"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: event{Event: "emergency.opened", BookingID: "booking-1"}}

	kafkaMsg, err := msg.ToKafkaMessage("hotel.emergency")
	require.NoError(t, err)

	assert.Equal(t, "hotel.emergency", kafkaMsg.Topic)
	assert.Equal(t, []byte("booking-1"), kafkaMsg.Key)
	assert.JSONEq(t, `{"event":"emergency.opened","booking_id":"booking-1"}`, string(kafkaMsg.Value))
}

func TestMessage_ToKafkaMessageRejectsUnmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("hotel.emergency")
	assert.Error(t, err)
}

func TestClient_DisabledIsNoop(t *testing.T) {
	client := kafka.New(&config.Config{})

	err := client.SendMessages(context.Background(), "hotel.payment", kafka.Message{Key: "k", Value: "v"})

	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestClient_WriterFlushesPromptly(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Kafka.Enable = true
	cfg.External.Kafka.Brokers = []string{"localhost:9092"}

	client := kafka.New(cfg)
	writer := kafka.WriterOf(client)

	require.NotNil(t, writer)
	assert.LessOrEqual(t, writer.BatchTimeout, 10*time.Millisecond)
	assert.Positive(t, writer.BatchTimeout)
	assert.NoError(t, client.Close())
}

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	event := kafka.Event{
		Name:      kafka.EventRefundSettled,
		BookingID: "b1",
		CaseID:    "c1",
		Amount:    "850.00",
		At:        time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	client.EXPECT().SendMessages(gomock.Any(), "hotel.emergency", kafka.Message{Key: "b1", Value: event}).
		Return(errors.New("broker unreachable"))

	kafka.Publish(context.Background(), client, "hotel.emergency", event)

	// no topic configured: nothing is sent
	kafka.Publish(context.Background(), client, "", event)
}
