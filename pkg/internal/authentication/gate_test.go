package authentication_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/authentication"
	"github.com/bsv-blockchain/go-node-auth/pkg/internal/testabilities/testusers"
	"github.com/bsv-blockchain/go-node-auth/pkg/sighash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverTime = time.UnixMilli(1502390208007)

type gateCase struct {
	request *sighash.Request
	nodeID  string
}

func givenGate() *authentication.Gate {
	clk := clock.NewMock()
	clk.Set(serverTime)
	return authentication.NewGate(clk, authentication.DefaultTimestampWindow)
}

func signedByAlice(t *testing.T) gateCase {
	t.Helper()

	req := &sighash.Request{
		Method:      http.MethodPost,
		Protocol:    "https",
		Host:        "api.storj.io",
		OriginalURL: "/contacts?someQueryArgument=value",
		Timestamp:   strconv.FormatInt(serverTime.UnixMilli(), 10),
		PublicKey:   testusers.Alice.PubkeyHex(t),
		Body:        []byte(`{"key": "value"}`),
	}

	var err error
	req.Signature, err = sighash.Sign(req, testusers.Alice.PrivateKey(t))
	require.NoError(t, err)

	return gateCase{
		request: req,
		nodeID:  testusers.Alice.NodeID(t).String(),
	}
}

func TestGateAuthenticate(t *testing.T) {
	t.Run("authenticate request signed by the node", func(t *testing.T) {
		// given:
		gate := givenGate()
		given := signedByAlice(t)

		// when:
		node, err := gate.Authenticate(given.request, given.nodeID)

		// then:
		require.NoError(t, err)
		assert.Equal(t, testusers.Alice.NodeID(t), node.NodeID)
		assert.Equal(t, testusers.Alice.PubkeyHex(t), node.PublicKey.ToDERHex())
	})

	t.Run("authenticate request with empty body", func(t *testing.T) {
		// given:
		gate := givenGate()
		given := signedByAlice(t)
		given.request.Body = []byte{}

		var err error
		given.request.Signature, err = sighash.Sign(given.request, testusers.Alice.PrivateKey(t))
		require.NoError(t, err)

		// when:
		node, err := gate.Authenticate(given.request, given.nodeID)

		// then:
		require.NoError(t, err)
		assert.NotNil(t, node)
	})

	failures := map[string]struct {
		breakCheck  func(t *testing.T, c *gateCase)
		expectedErr error
	}{
		"invalid timestamp (too old)": {
			breakCheck: func(t *testing.T, c *gateCase) {
				c.request.Timestamp = strconv.FormatInt(serverTime.UnixMilli()-300001, 10)
			},
			expectedErr: authentication.ErrInvalidTimestamp,
		},
		"invalid timestamp (in the future)": {
			breakCheck: func(t *testing.T, c *gateCase) {
				c.request.Timestamp = strconv.FormatInt(serverTime.UnixMilli()+300001, 10)
			},
			expectedErr: authentication.ErrInvalidTimestamp,
		},
		"invalid timestamp (missing)": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.Timestamp = "" },
			expectedErr: authentication.ErrInvalidTimestamp,
		},
		"invalid timestamp (not a number)": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.Timestamp = "yesterday" },
			expectedErr: authentication.ErrInvalidTimestamp,
		},
		"invalid pubkey": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.PublicKey = "098cdc0b987405176647449b7f727444d263101f74e2a593d76ecedf11230706dd" },
			expectedErr: authentication.ErrInvalidPublicKey,
		},
		"missing pubkey": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.PublicKey = "" },
			expectedErr: authentication.ErrInvalidPublicKey,
		},
		"invalid nodeid": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.nodeID = "e6a498de631c6f3eba57da0e416881f9d4a6fca1" },
			expectedErr: authentication.ErrInvalidNodeID,
		},
		"missing nodeid": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.nodeID = "" },
			expectedErr: authentication.ErrInvalidNodeID,
		},
		"missing body": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.Body = nil },
			expectedErr: authentication.ErrMissingBody,
		},
		"invalid signature (tampered body)": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.Body = []byte(`{"key": "other"}`) },
			expectedErr: authentication.ErrInvalidSignature,
		},
		"invalid signature (tampered path)": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.OriginalURL = "/contacts" },
			expectedErr: authentication.ErrInvalidSignature,
		},
		"invalid signature (missing)": {
			breakCheck:  func(_ *testing.T, c *gateCase) { c.request.Signature = "" },
			expectedErr: authentication.ErrInvalidSignature,
		},
		"invalid signature (other node)": {
			breakCheck: func(t *testing.T, c *gateCase) {
				var err error
				c.request.Signature, err = sighash.Sign(c.request, testusers.Bob.PrivateKey(t))
				require.NoError(t, err)
			},
			expectedErr: authentication.ErrInvalidSignature,
		},
	}
	for name, test := range failures {
		t.Run("reject "+name, func(t *testing.T) {
			// given:
			gate := givenGate()
			given := signedByAlice(t)
			test.breakCheck(t, &given)

			// when:
			node, err := gate.Authenticate(given.request, given.nodeID)

			// then:
			require.ErrorIs(t, err, test.expectedErr)
			assert.Nil(t, node)
		})
	}

	t.Run("report the first failed check", func(t *testing.T) {
		// given:
		gate := givenGate()
		given := signedByAlice(t)

		// and: break all checks
		given.request.Signature = "00"
		given.request.Body = nil
		given.nodeID = "somegarbage"
		given.request.PublicKey = "zz"
		given.request.Timestamp = "0"

		checks := []struct {
			expectedErr error
			fix         func()
		}{
			{expectedErr: authentication.ErrInvalidTimestamp, fix: func() {
				given.request.Timestamp = strconv.FormatInt(serverTime.UnixMilli(), 10)
			}},
			{expectedErr: authentication.ErrInvalidPublicKey, fix: func() {
				given.request.PublicKey = testusers.Alice.PubkeyHex(t)
			}},
			{expectedErr: authentication.ErrInvalidNodeID, fix: func() {
				given.nodeID = testusers.Alice.NodeID(t).String()
			}},
			{expectedErr: authentication.ErrMissingBody, fix: func() {
				given.request.Body = []byte(`{"key": "value"}`)
			}},
			{expectedErr: authentication.ErrInvalidSignature, fix: func() {
				var err error
				given.request.Signature, err = sighash.Sign(given.request, testusers.Alice.PrivateKey(t))
				require.NoError(t, err)
			}},
		}

		for _, check := range checks {
			// when:
			_, err := gate.Authenticate(given.request, given.nodeID)

			// then:
			require.ErrorIs(t, err, check.expectedErr)
			check.fix()
		}

		// when:
		node, err := gate.Authenticate(given.request, given.nodeID)

		// then:
		require.NoError(t, err)
		assert.NotNil(t, node)
	})

	t.Run("use server clock for freshness", func(t *testing.T) {
		// given:
		clk := clock.NewMock()
		clk.Set(serverTime)
		gate := authentication.NewGate(clk, authentication.DefaultTimestampWindow)
		given := signedByAlice(t)

		// when:
		clk.Add(authentication.DefaultTimestampWindow + time.Millisecond)
		_, err := gate.Authenticate(given.request, given.nodeID)

		// then:
		require.ErrorIs(t, err, authentication.ErrInvalidTimestamp)
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "invalid_timestamp", authentication.Outcome(authentication.ErrInvalidTimestamp))
	assert.Equal(t, "invalid_public_key", authentication.Outcome(authentication.ErrInvalidPublicKey))
	assert.Equal(t, "invalid_node_id", authentication.Outcome(authentication.ErrInvalidNodeID))
	assert.Equal(t, "missing_body", authentication.Outcome(authentication.ErrMissingBody))
	assert.Equal(t, "invalid_signature", authentication.Outcome(authentication.ErrInvalidSignature))
	assert.Equal(t, "internal_error", authentication.Outcome(assert.AnError))
}
