package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joelkehle/patentgrade/internal/cli"
	"github.com/joelkehle/patentgrade/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "patentgrade", cli.Version)
	if err != nil {
		log.Printf("telemetry setup: %v", err)
	} else {
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdown(flushCtx); err != nil {
				log.Printf("telemetry shutdown: %v", err)
			}
		}()
	}

	if err := cli.Execute(ctx); err != nil {
		log.Fatalf("patentgrade: %v", err)
	}
}
