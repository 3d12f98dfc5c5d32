package authctx_test

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authctx"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldGetNode(t *testing.T) {
	t.Run("return error on missing node", func(t *testing.T) {
		// when:
		node, err := authctx.ShouldGetNode(t.Context())

		// then:
		require.Error(t, err)
		assert.Nil(t, node)
	})

	t.Run("return error on unexpected value type", func(t *testing.T) {
		// given:
		ctx := context.WithValue(t.Context(), authctx.NodeKey, "node")

		// when:
		node, err := authctx.ShouldGetNode(ctx)

		// then:
		require.Error(t, err)
		assert.Nil(t, node)
	})

	t.Run("return error on nil node", func(t *testing.T) {
		// given:
		ctx := authctx.WithNode(t.Context(), nil)

		// when:
		node, err := authctx.ShouldGetNode(ctx)

		// then:
		require.Error(t, err)
		assert.Nil(t, node)
	})

	t.Run("return stored node", func(t *testing.T) {
		// given:
		privKey, err := ec.NewPrivateKey()
		require.NoError(t, err)
		expected := &authctx.Node{
			NodeID:    identity.DeriveNodeID(privKey.PubKey().ToDER()),
			PublicKey: privKey.PubKey(),
		}
		ctx := authctx.WithNode(t.Context(), expected)

		// when:
		node, err := authctx.ShouldGetNode(ctx)

		// then:
		require.NoError(t, err)
		assert.Equal(t, expected, node)
	})
}

func TestRawBody(t *testing.T) {
	t.Run("missing raw body", func(t *testing.T) {
		// when:
		body, ok := authctx.RawBody(t.Context())

		// then:
		assert.False(t, ok)
		assert.Nil(t, body)
	})

	t.Run("empty raw body is present", func(t *testing.T) {
		// given:
		ctx := authctx.WithRawBody(t.Context(), []byte{})

		// when:
		body, ok := authctx.RawBody(ctx)

		// then:
		assert.True(t, ok)
		assert.Empty(t, body)
	})

	t.Run("nil raw body is not present", func(t *testing.T) {
		// given:
		ctx := authctx.WithRawBody(t.Context(), nil)

		// when:
		_, ok := authctx.RawBody(ctx)

		// then:
		assert.False(t, ok)
	})
}
