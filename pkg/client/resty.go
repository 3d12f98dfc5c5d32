package client

import (
	"net/http"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/go-resty/resty/v2"
)

// New creates a resty client which signs every request with the private key.
func New(privKey *ec.PrivateKey, opts ...func(*SignerOptions)) *resty.Client {
	return Attach(resty.New(), NewSigner(privKey, opts...))
}

// Attach makes the resty client sign every request with the signer.
// It replaces the pre-request hook of the client.
func Attach(client *resty.Client, signer *Signer) *resty.Client {
	return client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		return signer.SignRequest(req)
	})
}
