package testabilities

import (
	"log/slog"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/middleware"
	"github.com/go-softwarelab/common/pkg/slogx"
	"github.com/go-softwarelab/common/pkg/to"
)

type MiddlewareFixtureOptions struct {
	logger *slog.Logger
}

func WithMiddlewareLogger(logger *slog.Logger) func(options *MiddlewareFixtureOptions) {
	return func(options *MiddlewareFixtureOptions) {
		options.logger = logger
	}
}

func WithoutLoggingFromMiddleware() func(*MiddlewareFixtureOptions) {
	return func(options *MiddlewareFixtureOptions) {
		options.logger = slog.New(slog.DiscardHandler)
	}
}

type MiddlewareFixture interface {
	NewAuth(opts ...func(*middleware.AuthMiddlewareConfig)) *middleware.AuthMiddlewareFactory
}

type middlewareFixture struct {
	testing.TB
	logger *slog.Logger
	clock  clock.Clock
}

func NewMiddlewareFixture(t testing.TB, clk clock.Clock, opts ...func(*MiddlewareFixtureOptions)) MiddlewareFixture {
	f := &middlewareFixture{
		TB:    t,
		clock: clk,
	}

	options := to.OptionsWithDefault(MiddlewareFixtureOptions{
		logger: slogx.NewTestLogger(f),
	}, opts...)

	f.logger = options.logger

	return f
}

// NewAuth creates auth middleware using the fixture clock, additional options are applied after the defaults.
func (f *middlewareFixture) NewAuth(opts ...func(*middleware.AuthMiddlewareConfig)) *middleware.AuthMiddlewareFactory {
	options := []func(*middleware.AuthMiddlewareConfig){
		middleware.WithAuthLogger(f.logger),
		middleware.WithClock(f.clock),
	}

	return middleware.NewAuth(append(options, opts...)...)
}
