package authentication

import (
	"errors"

	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
)

// Authentication failure kinds. Every rejection returned by the gate matches exactly one of them with errors.Is.
var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidPublicKey = identity.ErrInvalidPublicKey
	ErrInvalidNodeID    = identity.ErrInvalidNodeID
	ErrMissingBody      = errors.New("missing raw body")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Outcome returns the label of the authentication failure kind, used for metrics and error codes.
func Outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimestamp):
		return "invalid_timestamp"
	case errors.Is(err, ErrInvalidPublicKey):
		return "invalid_public_key"
	case errors.Is(err, ErrInvalidNodeID):
		return "invalid_node_id"
	case errors.Is(err, ErrMissingBody):
		return "missing_body"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "internal_error"
	}
}
