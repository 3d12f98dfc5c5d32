package authentication

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authctx"
	"github.com/bsv-blockchain/go-node-auth/pkg/sighash"
)

// Gate decides whether a request was sent by the node it claims to come from.
// It holds no mutable state and is safe for concurrent use.
type Gate struct {
	clock  clock.Clock
	window time.Duration
}

func NewGate(clk clock.Clock, window time.Duration) *Gate {
	if clk == nil {
		clk = clock.New()
	}
	if window <= 0 {
		window = DefaultTimestampWindow
	}

	return &Gate{
		clock:  clk,
		window: window,
	}
}

// Authenticate runs the checks in fixed order and stops on the first failure:
// timestamp, public key, node id, body presence, signature.
func (g *Gate) Authenticate(req *sighash.Request, claimedNodeID string) (*authctx.Node, error) {
	timestamp, err := parseTimestamp(req.Timestamp)
	if err != nil {
		return nil, err
	}

	now := g.clock.Now().UnixMilli()
	if !CheckTimestampWithin(timestamp, now, g.window) {
		return nil, fmt.Errorf("%w: %d is outside of %s from server time %d", ErrInvalidTimestamp, timestamp, g.window, now)
	}

	pubKey, err := identity.ParsePubkey(req.PublicKey)
	if err != nil {
		return nil, err
	}

	if !identity.CheckNodeID(claimedNodeID, req.PublicKey) {
		return nil, fmt.Errorf("%w: %q doesn't match the public key", ErrInvalidNodeID, claimedNodeID)
	}

	if req.Body == nil {
		return nil, ErrMissingBody
	}

	if !sighash.CheckSig(req) {
		return nil, ErrInvalidSignature
	}

	return &authctx.Node{
		NodeID:    identity.DeriveNodeID(pubKey.ToDER()),
		PublicKey: pubKey,
	}, nil
}
