// eventlog tails the collage event topic and logs every event.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ds124wfegd/collage/config"
	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/ds124wfegd/collage/internal/pkg/kafka"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := kafka.StartEventConsumer(ctx,
		strings.Split(config.GetEnv("KAFKA_BROKERS", "localhost:9094"), ","),
		config.GetEnv("KAFKA_TOPIC", "collage-events"),
		config.GetEnv("KAFKA_GROUP_ID", "collage-event-logger"),
		func(e entity.CollageEvent) {
			logrus.WithFields(logrus.Fields{
				"collage_id": e.ID,
				"width":      e.Width,
				"height":     e.Height,
				"images":     e.Images,
				"bytes":      e.Bytes,
				"created_at": e.CreatedAt,
			}).Info("Collage generated")
		},
	)
	if err != nil {
		logrus.Errorf("event consumer stopped: %s", err.Error())
		os.Exit(1)
	}
}
