package client

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/constants"
	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/logging"
	"github.com/bsv-blockchain/go-node-auth/pkg/sighash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/go-softwarelab/common/pkg/to"
)

type SignerOptions struct {
	Clock  clock.Clock
	Logger *slog.Logger
}

// WithClock sets the time source for the request timestamps.
func WithClock(clk clock.Clock) func(*SignerOptions) {
	return func(options *SignerOptions) {
		options.Clock = clk
	}
}

// WithLogger configures the signer to use the provided logger.
func WithLogger(logger *slog.Logger) func(*SignerOptions) {
	return func(options *SignerOptions) {
		options.Logger = logger
	}
}

// Signer adds node authentication headers to outgoing requests.
type Signer struct {
	privKey   *ec.PrivateKey
	publicKey string
	nodeID    identity.NodeID
	clock     clock.Clock
	log       *slog.Logger
}

func NewSigner(privKey *ec.PrivateKey, opts ...func(*SignerOptions)) *Signer {
	if privKey == nil {
		panic("private key must be provided to create node request signer")
	}

	options := to.OptionsWithDefault(SignerOptions{
		Clock:  clock.New(),
		Logger: slog.Default(),
	}, opts...)

	pubKey := privKey.PubKey()

	return &Signer{
		privKey:   privKey,
		publicKey: pubKey.ToDERHex(),
		nodeID:    identity.DeriveNodeID(pubKey.ToDER()),
		clock:     options.Clock,
		log:       logging.Child(options.Logger, "NodeRequestSigner"),
	}
}

// NodeID returns the node id of the signing key.
func (s *Signer) NodeID() identity.NodeID {
	return s.nodeID
}

// PublicKey returns the hex encoded compressed public key of the signing key.
func (s *Signer) PublicKey() string {
	return s.publicKey
}

// SignRequest sets node id, public key, timestamp and signature headers on the request.
// The request must not be modified afterwards, otherwise the signature won't match.
func (s *Signer) SignRequest(req *http.Request) error {
	body, err := requestBody(req)
	if err != nil {
		return err
	}

	req.Header.Set(constants.HeaderNodeID, s.nodeID.String())
	req.Header.Set(constants.HeaderPublicKey, s.publicKey)
	req.Header.Set(constants.HeaderTimestamp, strconv.FormatInt(s.clock.Now().UnixMilli(), 10))

	signature, err := sighash.Sign(sighash.FromHTTPRequest(req, body), s.privKey)
	if err != nil {
		return err
	}
	req.Header.Set(constants.HeaderSignature, signature)

	s.log.Debug("Signed node request", slog.String("method", req.Method), slog.String("url", req.URL.String()))
	return nil
}

// requestBody returns the body bytes without consuming the request body.
func requestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return []byte{}, nil
	}

	if req.GetBody != nil {
		reader, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to get request body: %w", err)
		}
		defer reader.Close()

		body, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
