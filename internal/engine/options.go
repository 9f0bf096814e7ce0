package engine

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures an Engine at construction time. The engine has no
// config file of its own -- like the teacher's constructors, it is
// configured entirely through its New(...) call, generalized here into
// functional options so embedders can opt into a custom logger or trade
// callback without a long positional argument list.
type Option func(*Engine)

// WithLogger overrides the package's default logger (the global zerolog
// logger, as used throughout the teacher's internal/net package).
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTradeCallback installs the trade callback at construction time,
// equivalent to calling SetTradeCallback immediately after New.
func WithTradeCallback(cb TradeCallback) Option {
	return func(e *Engine) {
		e.onTrade = cb
	}
}

// WithReclaimThreshold overrides defaultReclaimThreshold, the dead-prefix
// size a price level must accumulate before it compacts away cancelled and
// filled slots. Every level created by the engine (on either side, at any
// price) uses this threshold.
func WithReclaimThreshold(threshold int) Option {
	return func(e *Engine) {
		e.reclaimThreshold = threshold
	}
}

func defaultLogger() zerolog.Logger {
	return log.Logger
}
