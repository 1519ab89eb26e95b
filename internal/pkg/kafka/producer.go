package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ds124wfegd/collage/config"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(ctx context.Context, key string, message interface{}) error
	Close() error
}

const sendTimeout = 2 * time.Second

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer connects to the configured brokers. Without brokers, or when
// none answers, it falls back to a producer that only logs the messages.
func NewProducer(cfg config.KafkaConfig) Producer {
	if len(cfg.Brokers) == 0 {
		logrus.Info("Kafka brokers not configured, collage events will only be logged")
		return &mockProducer{topic: cfg.Topic}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		logrus.WithError(err).Warn("Kafka connection failed, using mock producer instead")
		return &mockProducer{topic: cfg.Topic}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).Debugf("Could not create topic %s (might already exist)", cfg.Topic)
	}

	logrus.WithField("brokers", cfg.Brokers).Info("Connected to Kafka")
	return newKafkaProducer(cfg)
}

func newKafkaProducer(cfg config.KafkaConfig) *kafkaProducer {
	return &kafkaProducer{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			// WriteMessages returns once the message is queued; delivery errors land here.
			Async:      true,
			Completion: logDelivery,
		},
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err != nil {
		logrus.WithError(err).WithField("messages", len(messages)).Warn("Failed to deliver collage events")
	}
}

func (p *kafkaProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"topic": p.topic, "key": key}).Debug("Message sent")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// mockProducer stands in when Kafka is not reachable.
type mockProducer struct {
	topic string
}

func (m *mockProducer) SendMessage(_ context.Context, key string, message interface{}) error {
	logrus.WithFields(logrus.Fields{
		"topic":   m.topic,
		"key":     key,
		"message": message,
	}).Info("MOCK: message not sent to Kafka")
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
