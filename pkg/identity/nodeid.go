package identity

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	crypto "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// NodeIDLength is the length of a node id in bytes.
const NodeIDLength = 20

var ErrInvalidNodeID = errors.New("invalid node id")

// NodeID addresses a peer on the network.
// It is the RIPEMD160(SHA256(pubkey)) digest of the node's compressed public key.
type NodeID [NodeIDLength]byte

// String returns the lowercase hex form of the node id.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseNodeID decodes a 40 character hex node id.
func ParseNodeID(s string) (NodeID, error) {
	var id NodeID
	if len(s) != hex.EncodedLen(NodeIDLength) || !IsHexString(s) {
		return id, fmt.Errorf("%w: expected %d hex characters", ErrInvalidNodeID, hex.EncodedLen(NodeIDLength))
	}

	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, errors.Join(ErrInvalidNodeID, err)
	}
	return id, nil
}

// DeriveNodeID computes the node id for the given raw public key bytes.
func DeriveNodeID(pubkey []byte) NodeID {
	var id NodeID
	copy(id[:], crypto.Hash160(pubkey))
	return id
}

// CheckNodeID reports whether the claimed node id is the one derived from pubkeyHex.
func CheckNodeID(claimed, pubkeyHex string) bool {
	id, err := ParseNodeID(claimed)
	if err != nil {
		return false
	}

	if !CheckPubkey(pubkeyHex) {
		return false
	}

	raw, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return false
	}

	derived := DeriveNodeID(raw)
	return bytes.Equal(id[:], derived[:])
}
