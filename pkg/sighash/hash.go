package sighash

import (
	"bytes"

	crypto "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Size is the length of the sighash in bytes.
const Size = 32

// Hash computes the sighash of the request:
// SHA-256 of method, absolute url, timestamp header and raw body, concatenated in that order.
func Hash(req *Request) []byte {
	url := req.URL()

	var buf bytes.Buffer
	buf.Grow(len(req.Method) + len(url) + len(req.Timestamp) + len(req.Body))
	buf.WriteString(req.Method)
	buf.WriteString(url)
	buf.WriteString(req.Timestamp)
	buf.Write(req.Body)

	return crypto.Sha256(buf.Bytes())
}
