// Command fenrir runs the interactive matching-engine shell. It supersedes
// the teacher's three duplicate drafts of a binary entry point
// (cmd/main.go, cmd/server/server.go, cmd/client/client.go) with one
// canonical command, following the teacher's flag-parsing and zerolog
// setup style.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fenrir/internal/engine"
	"fenrir/internal/history"
	"fenrir/internal/repl"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	historySize := flag.Int("history", 1024, "number of recent trades to retain in memory")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("logLevel", *logLevel).Msg("invalid log level")
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	hist := history.NewRecorder(*historySize)
	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithTradeCallback(func(bid, ask engine.Order, volume uint64) {
			price := ask.Price
			if bid.ID < ask.ID {
				price = bid.Price
			}
			hist.Observe(bid.ID, ask.ID, price, volume, time.Now())
		}),
	)

	shell := repl.New(eng, hist, os.Stdin, os.Stdout, logger)
	if err := shell.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("shell exited with error")
		os.Exit(1)
	}
}
