package kafka_test

import (
	"context"
	"salon/config"
	"salon/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestMessage_RoundTrip(t *testing.T) {
	message := kafka.Message{Key: "a1", Value: event{ID: "a1", Status: "pending"}}

	encoded, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("a1"), encoded.Key)
	assert.JSONEq(t, `{"id":"a1","status":"pending"}`, string(encoded.Value))

	decoded, err := kafka.Decode[event](encoded)
	require.NoError(t, err)
	assert.Equal(t, event{ID: "a1", Status: "pending"}, decoded)
}

func TestMessage_Invalid(t *testing.T) {
	message := kafka.Message{Key: "a1", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)

	_, err = kafka.Decode[event](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestClient_WithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{})

	err := client.SendMessages(context.Background(), "topic", kafka.Message{Key: "k", Value: "v"})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client.Consume(ctx, "", "topic", func(context.Context, kafkaGo.Message) error { return nil })
	assert.NoError(t, client.Close())
}
