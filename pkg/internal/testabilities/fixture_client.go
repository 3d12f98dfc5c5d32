package testabilities

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/client"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/testabilities/testusers"
	"github.com/go-resty/resty/v2"
	"github.com/go-softwarelab/common/pkg/slogx"
	"github.com/go-softwarelab/common/pkg/to"
	"github.com/stretchr/testify/require"
)

type ClientFixtureOptions struct {
	logger *slog.Logger
}

func WithClientLogger(logger *slog.Logger) func(options *ClientFixtureOptions) {
	return func(options *ClientFixtureOptions) {
		options.logger = logger
	}
}

type ClientFixture interface {
	// ForUser returns resty client signing requests with the user key.
	ForUser(user testusers.User) *resty.Client
	// SignedRequest returns request signed by the user, which can be modified before sending to break the signature.
	SignedRequest(user testusers.User, method, url, body string) *http.Request
}

type clientFixture struct {
	testing.TB
	logger *slog.Logger
	clock  clock.Clock
}

func newClientFixture(t testing.TB, clk clock.Clock, opts ...func(*ClientFixtureOptions)) ClientFixture {
	f := &clientFixture{
		TB:    t,
		clock: clk,
	}

	options := to.OptionsWithDefault(ClientFixtureOptions{
		logger: slogx.NewTestLogger(f),
	}, opts...)

	f.logger = options.logger

	return f
}

func (f *clientFixture) ForUser(user testusers.User) *resty.Client {
	return client.New(user.PrivateKey(f), client.WithClock(f.clock), client.WithLogger(f.logger))
}

func (f *clientFixture) SignedRequest(user testusers.User, method, url, body string) *http.Request {
	f.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(f.Context(), method, url, reader)
	require.NoError(f, err, "failed to create request: invalid test setup")

	signer := client.NewSigner(user.PrivateKey(f), client.WithClock(f.clock), client.WithLogger(f.logger))
	err = signer.SignRequest(req)
	require.NoError(f, err, "failed to sign request: invalid test setup")

	return req
}
