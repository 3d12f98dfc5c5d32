package middleware

import (
	"context"
	"errors"

	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authctx"
)

// Node is the identity of the peer which sent an authenticated request.
type Node = authctx.Node

var ErrUnauthenticated = errors.New("request is not authenticated")

// ShouldGetNode returns the node attached to the context by the auth middleware.
func ShouldGetNode(ctx context.Context) (*Node, error) {
	node, err := authctx.ShouldGetNode(ctx)
	if err != nil {
		return nil, errors.Join(ErrUnauthenticated, err)
	}
	return node, nil
}

// NodeFromContext returns the authenticated node and whether there is one.
func NodeFromContext(ctx context.Context) (*Node, bool) {
	node, err := authctx.ShouldGetNode(ctx)
	return node, err == nil
}

// WithRawBody should be used by body parsing middleware running before the auth middleware,
// which already consumed the request body. The auth middleware uses the stored bytes instead of reading the body.
func WithRawBody(ctx context.Context, body []byte) context.Context {
	if body == nil {
		body = []byte{}
	}
	return authctx.WithRawBody(ctx, body)
}
