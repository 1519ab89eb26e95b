package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ds124wfegd/collage/config"
	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerWithoutBrokersIsMock(t *testing.T) {
	p := NewProducer(config.KafkaConfig{Topic: "collage-events"})
	defer p.Close()

	require.IsType(t, &mockProducer{}, p)
	assert.NoError(t, p.SendMessage(context.Background(), "id", entity.CollageEvent{ID: "id"}))
}

func TestNewKafkaProducerWriterSettings(t *testing.T) {
	p := newKafkaProducer(config.KafkaConfig{Brokers: []string{"a:9092", "b:9092"}, Topic: "collage-events"})
	defer p.Close()

	assert.Equal(t, "collage-events", p.writer.Topic)
	assert.Equal(t, "a:9092,b:9092", p.writer.Addr.String())
	assert.True(t, p.writer.Async, "publishing must not block the request")
	assert.NotNil(t, p.writer.Completion)
}

func TestSendMessageDoesNotWaitForUnreachableBroker(t *testing.T) {
	// nothing listens on port 1, an async writer still queues the message at once
	p := newKafkaProducer(config.KafkaConfig{Brokers: []string{"127.0.0.1:1"}, Topic: "collage-events"})
	p.writer.MaxAttempts = 1
	defer p.Close()

	start := time.Now()
	err := p.SendMessage(context.Background(), "c1", entity.CollageEvent{ID: "c1"})
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), sendTimeout)
}

func TestDecodeEvent(t *testing.T) {
	created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	valid, err := json.Marshal(entity.CollageEvent{ID: "c1", Width: 3000, Height: 2000, Images: 2, Bytes: 512, CreatedAt: created})
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   []byte
		wantErr bool
	}{
		{name: "valid event", value: valid},
		{name: "not json", value: []byte("{oops"), wantErr: true},
		{name: "missing id", value: []byte(`{"width":10}`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeEvent(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "c1", event.ID)
			assert.Equal(t, 2, event.Images)
			assert.True(t, created.Equal(event.CreatedAt))
		})
	}
}
