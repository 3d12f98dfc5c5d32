package sighash

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

var (
	curveOrder, _  = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	halfCurveOrder = new(big.Int).Rsh(curveOrder, 1)
)

// CheckSig reports whether the signature header of the request is a valid signature
// of the request sighash made with the key from the pubkey header.
// Signatures with high S are rejected.
func CheckSig(req *Request) bool {
	if !identity.IsHexString(req.Signature) || req.Signature == "" {
		return false
	}

	sig, err := parseSignature(req.Signature)
	if err != nil {
		return false
	}

	pubKey, err := identity.ParsePubkey(req.PublicKey)
	if err != nil {
		return false
	}

	return sig.Verify(Hash(req), pubKey)
}

func parseSignature(signatureHex string) (*ec.Signature, error) {
	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return nil, fmt.Errorf("invalid signature hex: %w", err)
	}

	// the DER parser ignores bytes after the sequence, they must not be there
	if len(sigBytes) < 2 || int(sigBytes[1])+2 != len(sigBytes) {
		return nil, errors.New("invalid signature length")
	}

	sig, err := ec.ParseDERSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid DER signature: %w", err)
	}

	if sig.S.Cmp(halfCurveOrder) > 0 {
		return nil, errors.New("signature is not in low S form")
	}
	return sig, nil
}

// Sign signs the request sighash with the private key and returns the hex encoded DER signature.
func Sign(req *Request, privKey *ec.PrivateKey) (string, error) {
	sig, err := privKey.Sign(Hash(req))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return hex.EncodeToString(sig.Serialize()), nil
}
