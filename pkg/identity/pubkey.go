package identity

import (
	"encoding/hex"
	"errors"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

const (
	// CompressedPublicKeyLength is the length of a compressed secp256k1 public key in bytes.
	CompressedPublicKeyLength = 33

	pubKeyCompressedEven byte = 0x02
	pubKeyCompressedOdd  byte = 0x03
)

var ErrInvalidPublicKey = errors.New("invalid public key")

// ParsePubkey decodes a hex encoded compressed secp256k1 public key.
// Uncompressed and hybrid encodings are rejected even though they describe valid points.
func ParsePubkey(pubkeyHex string) (*ec.PublicKey, error) {
	raw, err := DecodePubkey(pubkeyHex)
	if err != nil {
		return nil, err
	}

	pubKey, err := ec.ParsePubKey(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidPublicKey, err)
	}
	return pubKey, nil
}

// DecodePubkey checks the hex and the compressed point framing and returns the raw key bytes.
// It does not check that the point lies on the curve, use ParsePubkey for that.
func DecodePubkey(pubkeyHex string) ([]byte, error) {
	if !IsHexString(pubkeyHex) {
		return nil, fmt.Errorf("%w: not a hex string", ErrInvalidPublicKey)
	}

	raw, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return nil, errors.Join(ErrInvalidPublicKey, err)
	}

	if len(raw) != CompressedPublicKeyLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, CompressedPublicKeyLength, len(raw))
	}

	if raw[0] != pubKeyCompressedEven && raw[0] != pubKeyCompressedOdd {
		return nil, fmt.Errorf("%w: unexpected prefix 0x%02x", ErrInvalidPublicKey, raw[0])
	}

	return raw, nil
}

// CheckPubkey reports whether pubkeyHex is a valid compressed secp256k1 public key.
func CheckPubkey(pubkeyHex string) bool {
	_, err := ParsePubkey(pubkeyHex)
	return err == nil
}
