package testabilities

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-resty/resty/v2"
	"github.com/go-softwarelab/common/pkg/slogx"
	"github.com/go-softwarelab/common/pkg/to"
	"github.com/stretchr/testify/require"
)

// ServerTime is the time of the mocked clock shared by the middleware and the clients.
var ServerTime = time.UnixMilli(1502390208007 + 300000)

type Options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) func(*Options) {
	return func(options *Options) {
		options.logger = logger
	}
}

func WithoutLogging() func(*Options) {
	return func(options *Options) {
		options.logger = slog.New(slog.DiscardHandler)
	}
}

type NodeAuthTestsFixture interface {
	Server() ServerFixture
	Middleware() MiddlewareFixture
	Client() ClientFixture
	Clock() *clock.Mock
}

type NodeAuthTestsAssertion interface {
	Request(*http.Request) RequestAssertion
	Response(*http.Response) ResponseAssertion
	RestyResponse(*resty.Response) ResponseAssertion
}

func New(t testing.TB, opts ...func(*Options)) (NodeAuthTestsFixture, NodeAuthTestsAssertion) {
	return Given(t, opts...), Then(t)
}

func Given(t testing.TB, opts ...func(*Options)) NodeAuthTestsFixture {
	f := &nodeAuthTestsFixture{
		TB: t,
	}

	options := to.OptionsWithDefault(Options{
		logger: slogx.NewTestLogger(f),
	}, opts...)

	f.logger = options.logger
	f.clock = clock.NewMock()
	f.clock.Set(ServerTime)

	f.serverFixture = NewServerFixture(f)
	f.middlewareFixture = NewMiddlewareFixture(f, f.clock, WithMiddlewareLogger(f.logger))

	return f
}

func Then(t testing.TB) NodeAuthTestsAssertion {
	return &nodeAuthTestsAssertion{
		TB: t,
	}
}

type nodeAuthTestsFixture struct {
	testing.TB
	serverFixture     ServerFixture
	middlewareFixture MiddlewareFixture
	logger            *slog.Logger
	clock             *clock.Mock
}

func (f *nodeAuthTestsFixture) Server() ServerFixture {
	return f.serverFixture
}

func (f *nodeAuthTestsFixture) Middleware() MiddlewareFixture {
	return f.middlewareFixture
}

func (f *nodeAuthTestsFixture) Client() ClientFixture {
	return newClientFixture(f, f.clock, WithClientLogger(f.logger))
}

func (f *nodeAuthTestsFixture) Clock() *clock.Mock {
	return f.clock
}

type nodeAuthTestsAssertion struct {
	testing.TB
}

func (a *nodeAuthTestsAssertion) Request(request *http.Request) RequestAssertion {
	a.Helper()
	require.NotNil(a, request, "request should not be nil")

	return NewRequestAssertion(a, request)
}

func (a *nodeAuthTestsAssertion) Response(response *http.Response) ResponseAssertion {
	a.Helper()
	require.NotNil(a, response, "response should not be nil")

	return NewResponseAssertion(a, response)
}

// RestyResponse asserts on the response received by resty client, which already consumed the body.
func (a *nodeAuthTestsAssertion) RestyResponse(response *resty.Response) ResponseAssertion {
	a.Helper()
	require.NotNil(a, response, "response should not be nil")
	require.NotNil(a, response.RawResponse, "raw response should not be nil")

	rawResponse := *response.RawResponse
	rawResponse.Body = io.NopCloser(bytes.NewReader(response.Body()))

	return NewResponseAssertion(a, &rawResponse)
}
