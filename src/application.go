package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/src/database"
	"github.com/FinCube-23/transferPoC-sub001/src/queues"
)

type Application struct {
	Logger   *logger.Logger
	Addr     string
	Engine   *gin.Engine
	Consumer *queues.Consumer
}

// Start runs the consumer and the REST API until a termination signal,
// then drains the consumer before releasing the store connection so no
// proof job is half-acknowledged when storage closes.
func (a *Application) Start() {
	a.Logger.Info("Starting Application runtime...")

	if err := a.Consumer.Start(); err != nil {
		// Degraded mode: HTTP keeps serving, health reports the outage.
		a.Logger.Error(err, "Proof consumer failed to start")
	}

	server := &http.Server{
		Addr:    a.Addr,
		Handler: a.Engine,
	}

	go func() {
		a.Logger.Infof("REST API is now listening on: %s", a.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal(err, "REST API server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.Logger.Infof("Received %s, shutting down...", sig)

	if err := a.Consumer.Stop(queues.DefaultStopTimeout); err != nil {
		a.Logger.Error(err, "Consumer shutdown reported an error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.Logger.Error(err, "REST API shutdown reported an error")
	}

	if err := database.Close(); err != nil {
		a.Logger.Error(err, "Database close reported an error")
	}

	a.Logger.Info("Application stopped")
}

func listenAddr(port uint16) string {
	return fmt.Sprintf("0.0.0.0:%d", port)
}
