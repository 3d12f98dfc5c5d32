package testusers

import (
	"testing"

	"github.com/bsv-blockchain/go-node-auth/pkg/identity"
	primitives "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/require"
)

var Alice = User{
	Name:    "Alice",
	PrivKey: "8e812246e61ea983efdd4d1c86e246832667a4e4b8fc2d9ff01c534c8a6d7681",
}

var Bob = User{
	Name:    "Bob",
	PrivKey: "143ab18a84d3b25e1a13cefa90038411e5d2014590a2a4a57263d1593c8dee1c",
}

type User struct {
	Name    string
	PrivKey string
}

// PubkeyHex returns the compressed public key in the form sent in the pubkey header.
func (u User) PubkeyHex(t testing.TB) string {
	t.Helper()
	return u.PublicKey(t).ToDERHex()
}

func (u User) NodeID(t testing.TB) identity.NodeID {
	t.Helper()
	return identity.DeriveNodeID(u.PublicKey(t).ToDER())
}

func (u User) PrivateKey(t testing.TB) *primitives.PrivateKey {
	t.Helper()

	priv, err := primitives.PrivateKeyFromHex(u.PrivKey)
	require.NoErrorf(t, err, "User %s has invalid private key hex %q", u.Name, u.PrivKey)
	return priv
}

func (u User) PublicKey(t testing.TB) *primitives.PublicKey {
	t.Helper()
	return u.PrivateKey(t).PubKey()
}
