package authentication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/constants"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authctx"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/logging"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/metrics"
	"github.com/bsv-blockchain/go-node-auth/pkg/middleware/httperror"
	"github.com/bsv-blockchain/go-node-auth/pkg/sighash"
	"github.com/go-softwarelab/common/pkg/to"
)

// DefaultMaxBodySize is the largest body the middleware reads to compute the sighash.
const DefaultMaxBodySize int64 = 1 << 20

type ErrorHandler = func(context.Context, *slog.Logger, *httperror.Error, http.ResponseWriter, *http.Request)

type Config struct {
	Logger              *slog.Logger
	Clock               clock.Clock
	TimestampWindow     time.Duration
	MaxBodySize         int64
	TrustForwardedProto bool
	Metrics             *metrics.AuthMetrics
	ErrorHandler        ErrorHandler
}

type Middleware struct {
	nextHandler         http.Handler
	log                 *slog.Logger
	gate                *Gate
	maxBodySize         int64
	trustForwardedProto bool
	metrics             *metrics.AuthMetrics
	errorHandler        ErrorHandler
}

func NewMiddleware(next http.Handler, opts ...func(*Config)) *Middleware {
	cfg := to.OptionsWithDefault(Config{
		Logger:              slog.Default(),
		Clock:               clock.New(),
		TimestampWindow:     DefaultTimestampWindow,
		MaxBodySize:         DefaultMaxBodySize,
		TrustForwardedProto: false,
		ErrorHandler:        DefaultErrorHandler,
	}, opts...)

	if cfg.Metrics == nil {
		// unregistered counters, so the middleware doesn't need to check for nil
		var err error
		cfg.Metrics, err = metrics.New(nil)
		if err != nil {
			panic(fmt.Sprintf("unexpected error when creating unregistered metrics: %v", err))
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	return &Middleware{
		nextHandler:         next,
		log:                 logging.Child(cfg.Logger, "NodeAuthMiddleware"),
		gate:                NewGate(cfg.Clock, cfg.TimestampWindow),
		maxBodySize:         cfg.MaxBodySize,
		trustForwardedProto: cfg.TrustForwardedProto,
		metrics:             cfg.Metrics,
		errorHandler:        cfg.ErrorHandler,
	}
}

func (m *Middleware) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	log := m.log.With(slog.String("path", request.URL.Path), slog.String("method", request.Method))

	body, err := m.rawBody(request)
	if err != nil {
		log.DebugContext(ctx, "Raw body is not available for authentication", logging.Error(err))
	}

	req := sighash.FromHTTPRequest(request, body, sighash.WithTrustForwardedProto(m.trustForwardedProto))

	node, err := m.gate.Authenticate(req, request.Header.Get(constants.HeaderNodeID))
	if err != nil {
		m.metrics.Observe(Outcome(err))
		log.DebugContext(ctx, "Node authentication failed", slog.String("outcome", Outcome(err)), logging.Error(err))
		m.errorHandler(ctx, log, toHTTPError(err), response, request)
		return
	}

	m.metrics.Authenticated()
	log.DebugContext(ctx, "Node authenticated", slog.String("nodeID", node.NodeID.String()))

	ctx = authctx.WithNode(ctx, node)
	m.nextHandler.ServeHTTP(response, request.WithContext(ctx))
}

// rawBody returns the body captured upstream or reads it from the request.
// The request body is replaced so the next handler can read it again.
func (m *Middleware) rawBody(request *http.Request) ([]byte, error) {
	if body, ok := authctx.RawBody(request.Context()); ok {
		return body, nil
	}

	if request.Body == nil {
		return nil, errors.New("request has no body reader")
	}

	body, err := io.ReadAll(io.LimitReader(request.Body, m.maxBodySize+1))
	if closeErr := request.Body.Close(); closeErr != nil {
		m.log.Warn("Failed to close request body", logging.Error(closeErr))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if int64(len(body)) > m.maxBodySize {
		return nil, fmt.Errorf("request body exceeds %d bytes", m.maxBodySize)
	}

	if body == nil {
		body = []byte{}
	}

	request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func toHTTPError(err error) *httperror.Error {
	httpErr := &httperror.Error{
		Err:        err,
		StatusCode: http.StatusUnauthorized,
		Code:       "ERR_" + strings.ToUpper(Outcome(err)),
	}

	// messages stay coarse, the reason of the failure is only logged
	switch {
	case errors.Is(err, ErrInvalidTimestamp):
		httpErr.Message = "Invalid timestamp header"
	case errors.Is(err, ErrInvalidPublicKey):
		httpErr.Message = "Invalid pubkey header"
	case errors.Is(err, ErrInvalidNodeID):
		httpErr.Message = "Invalid nodeID header"
	case errors.Is(err, ErrMissingBody):
		httpErr.Message = "Raw body not available"
	case errors.Is(err, ErrInvalidSignature):
		httpErr.Message = "Invalid signature header"
	default:
		httpErr.StatusCode = http.StatusInternalServerError
		httpErr.Message = "Internal Server Error"
	}

	return httpErr
}

// DefaultErrorHandler writes the error as JSON response with the error status code.
func DefaultErrorHandler(ctx context.Context, log *slog.Logger, httpErr *httperror.Error, w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)

	if err := json.NewEncoder(w).Encode(httpErr.Response()); err != nil {
		log.ErrorContext(ctx, "Failed to write error response", logging.Error(err))
	}
}
