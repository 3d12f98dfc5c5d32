package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authentication"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMiddlewareConfig is the configuration for the node authentication middleware.
type AuthMiddlewareConfig = authentication.Config

// ErrorHandler writes the response for a rejected request.
type ErrorHandler = authentication.ErrorHandler

const (
	DefaultTimestampWindow = authentication.DefaultTimestampWindow
	DefaultMaxBodySize     = authentication.DefaultMaxBodySize
)

// Authentication failure kinds, can be checked with errors.Is on the error passed to ErrorHandler.
var (
	ErrInvalidTimestamp = authentication.ErrInvalidTimestamp
	ErrInvalidPublicKey = authentication.ErrInvalidPublicKey
	ErrInvalidNodeID    = authentication.ErrInvalidNodeID
	ErrMissingBody      = authentication.ErrMissingBody
	ErrInvalidSignature = authentication.ErrInvalidSignature
)

// DefaultErrorHandler responds with 401 status and JSON body describing the failure kind.
var DefaultErrorHandler = authentication.DefaultErrorHandler

// WithAuthLogger configures the middleware to use the provided logger.
func WithAuthLogger(logger *slog.Logger) func(*AuthMiddlewareConfig) {
	// don't override the default
	if logger == nil {
		return func(cfg *AuthMiddlewareConfig) {}
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.Logger = logger
	}
}

// WithClock replaces the source of the server time used for the timestamp check.
func WithClock(clk clock.Clock) func(*AuthMiddlewareConfig) {
	if clk == nil {
		panic("clock must be provided")
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.Clock = clk
	}
}

// WithTimestampWindow changes how far the request timestamp may be from the server time.
func WithTimestampWindow(window time.Duration) func(*AuthMiddlewareConfig) {
	if window <= 0 {
		panic("timestamp window must be positive")
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.TimestampWindow = window
	}
}

// WithMaxBodySize limits the size of the body read by the middleware, bigger requests are rejected.
func WithMaxBodySize(size int64) func(*AuthMiddlewareConfig) {
	if size <= 0 {
		panic("max body size must be positive")
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.MaxBodySize = size
	}
}

// WithTrustForwardedProto takes the protocol scheme for the sighash from x-forwarded-proto header.
// Use it only when the server is behind a proxy which terminates TLS and sets that header.
func WithTrustForwardedProto() func(*AuthMiddlewareConfig) {
	return func(cfg *AuthMiddlewareConfig) {
		cfg.TrustForwardedProto = true
	}
}

// WithErrorHandler replaces the handler which writes responses for rejected requests.
func WithErrorHandler(handler ErrorHandler) func(*AuthMiddlewareConfig) {
	if handler == nil {
		panic("error handler must be provided")
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.ErrorHandler = handler
	}
}

// WithMetrics registers the authentication outcome counters in the registerer.
// Counters are registered once, when the option is created.
func WithMetrics(registerer prometheus.Registerer) func(*AuthMiddlewareConfig) {
	authMetrics, err := metrics.New(registerer)
	if err != nil {
		panic(fmt.Sprintf("failed to register node auth metrics: %v", err))
	}

	return func(cfg *AuthMiddlewareConfig) {
		cfg.Metrics = authMetrics
	}
}

// AuthMiddlewareFactory is a factory for node authentication middleware.
type AuthMiddlewareFactory struct {
	options []func(*AuthMiddlewareConfig)
}

// NewAuth creates a new auth middleware factory, which can be used to apply node authentication to a server.
func NewAuth(opts ...func(*AuthMiddlewareConfig)) *AuthMiddlewareFactory {
	return &AuthMiddlewareFactory{
		options: opts,
	}
}

// HTTPHandler creates a new auth middleware as http.Handler, which wraps the provided handler.
func (f *AuthMiddlewareFactory) HTTPHandler(next http.Handler) http.Handler {
	return f.HTTPHandlerWithOptions(next)
}

// HTTPHandlerWithOptions creates a new auth middleware as http.Handler, which wraps the provided handler.
// Allows for additional configuration with options.
func (f *AuthMiddlewareFactory) HTTPHandlerWithOptions(next http.Handler, opts ...func(*AuthMiddlewareConfig)) http.Handler {
	if next == nil {
		panic("next handler must be provided to apply auth middleware to it")
	}

	options := make([]func(*AuthMiddlewareConfig), 0, len(f.options)+len(opts))
	options = append(options, f.options...)
	options = append(options, opts...)

	return authentication.NewMiddleware(next, options...)
}

// Handler is HTTPHandler in the shape expected by routers accepting func(http.Handler) http.Handler middleware.
func (f *AuthMiddlewareFactory) Handler(next http.Handler) http.Handler {
	return f.HTTPHandler(next)
}
