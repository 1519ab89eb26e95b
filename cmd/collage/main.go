// entry point to the collage service
package main

import (
	"github.com/ds124wfegd/collage/config"
	"github.com/ds124wfegd/collage/internal/appServer"
	"github.com/ds124wfegd/collage/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %s", err.Error())
	}

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		logrus.Fatalf("Cannot set up logging. Error: {%s}", err.Error())
	}
	defer closer.Close()

	appServer.NewServer(cfg)
}
