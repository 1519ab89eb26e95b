package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type EventHandler func(entity.CollageEvent)

// StartEventConsumer reads collage events until ctx is cancelled.
// Messages that are not valid events are logged and skipped.
func StartEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handle EventHandler) error {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	logrus.WithFields(logrus.Fields{
		"brokers": brokers,
		"topic":   topic,
		"group":   groupID,
	}).Info("Collage event consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("Error reading message from Kafka")
			continue
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).WithError(err).Warn("Skipping message")
			continue
		}

		handle(event)
	}
}

func decodeEvent(value []byte) (entity.CollageEvent, error) {
	var event entity.CollageEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return event, fmt.Errorf("failed to parse event: %w", err)
	}
	if event.ID == "" {
		return event, errors.New("event without id")
	}
	return event, nil
}
