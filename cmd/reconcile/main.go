// Package main runs the client-side reconciliation loop on its own:
// it polls the transfer updates feed and prints every decision it has
// not seen before. Useful for headless consumers and for watching an
// account without a browser session.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"arcbank/internal/client"
	"arcbank/internal/config"
	"arcbank/internal/services/transfer"
)

func main() {
	config.LoadEnv()

	baseURL := config.GetEnv("API_BASE_URL", "http://localhost:3000")
	token := os.Getenv("API_TOKEN")
	if token == "" {
		log.Fatal("API_TOKEN must be set in environment")
	}

	fetcher := client.NewClient(baseURL, token)
	poller := client.NewPoller(fetcher, client.NewDedup(), func(u transfer.TransferUpdate) {
		if u.Reason != "" {
			log.Printf("transfer %s is %s: %s", u.Reference, u.Status, u.Reason)
			return
		}
		log.Printf("transfer %s is %s", u.Reference, u.Status)
	}, client.PollerConfig{
		Interval: config.GetDurationEnv("POLL_INTERVAL", client.DefaultPollInterval),
		Limit:    config.GetIntEnv("POLL_LIMIT", 0),
	})
	defer poller.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down reconciliation loop...")
		cancel()
	}()

	log.Printf("✅ Polling %s for transfer updates", baseURL)
	poller.Start(ctx)
}
