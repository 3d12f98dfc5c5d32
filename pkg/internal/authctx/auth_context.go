package authctx

import (
	"context"
	"fmt"

	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// Node is the identity of a peer which passed node authentication.
type Node struct {
	NodeID    identity.NodeID
	PublicKey *ec.PublicKey
}

type contextKey string

// NodeKey stores the authenticated node in context.
const NodeKey contextKey = "authenticated_node"

// RawBodyKey stores the raw request body captured by an upstream body parser.
const RawBodyKey contextKey = "raw_body"

func WithNode(ctx context.Context, node *Node) context.Context {
	return context.WithValue(ctx, NodeKey, node)
}

func ShouldGetNode(ctx context.Context) (*Node, error) {
	contextValue := ctx.Value(NodeKey)
	if contextValue == nil {
		return nil, fmt.Errorf("%s not found in context", NodeKey)
	}

	node, ok := contextValue.(*Node)
	if !ok {
		return nil, fmt.Errorf("%s contains unexpected type %T", NodeKey, contextValue)
	}

	if node == nil {
		return nil, fmt.Errorf("%s is empty", NodeKey)
	}

	return node, nil
}

// WithRawBody stores the raw body so the authentication doesn't need to read the request body again.
// An empty body should be stored as empty, non-nil slice.
func WithRawBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, RawBodyKey, body)
}

func RawBody(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(RawBodyKey).([]byte)
	if !ok || body == nil {
		return nil, false
	}
	return body, true
}
