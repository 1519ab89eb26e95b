// launching the HTTP server and its collaborators
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/collage/config"
	"github.com/ds124wfegd/collage/internal/pkg/compositor"
	"github.com/ds124wfegd/collage/internal/pkg/kafka"
	"github.com/ds124wfegd/collage/internal/service"
	"github.com/ds124wfegd/collage/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the collage pipeline behind the HTTP routes.
func NewHandler(cfg *config.Config, producer kafka.Producer) (http.Handler, error) {
	compression, err := compositor.ParseCompression(cfg.Collage.Compression)
	if err != nil {
		return nil, err
	}

	comp := compositor.New(
		compositor.WithTileSize(cfg.Collage.TileSize),
		compositor.WithMaxPixels(cfg.Collage.MaxPixels),
		compositor.WithCompression(compression),
	)
	collageService := service.NewCollageService(comp, producer)
	collageHandler := transport.NewCollageHandler(collageService, cfg.Collage)

	return transport.InitRoutes(collageHandler, cfg.Collage.MaxMemory), nil
}

func NewServer(cfg *config.Config) {

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	producer := kafka.NewProducer(cfg.Kafka)
	defer producer.Close()

	handler, err := NewHandler(cfg, producer)
	if err != nil {
		logrus.Fatalf("error occured while building handlers: %s", err.Error())
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithField("addr", cfg.Server.Addr()).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
