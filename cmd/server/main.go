package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/lovishduggal/brainwave-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New()
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Log.Fatal("Server exited", "error", err.Error())
	}
}
