// Command spotctl lists, adds and deletes tourist spots from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"spotapi/internal/app"
	"spotapi/internal/config"
	"spotapi/internal/logging"
	"spotapi/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var spots *app.App
	defer func() {
		if spots != nil {
			spots.Close()
		}
	}()

	open := func(ctx context.Context) (service.SpotService, error) {
		cfg := config.Load()
		// Diagnostics go to stderr so stdout stays the list output.
		log := logging.New(os.Stderr, cfg.Location()).With("spotctl")
		a, err := app.New(ctx, cfg, log, nil)
		if err != nil {
			return nil, err
		}
		spots = a
		return a.Service, nil
	}

	cmd := newRootCmd(open)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if spots != nil {
			spots.Close()
		}
		os.Exit(1)
	}
}
