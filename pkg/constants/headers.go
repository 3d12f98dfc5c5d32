package constants

// Node authentication HTTP header constants.
// Header lookup goes through http.Header, so the casing here is only the canonical wire form.
const (
	// NodeHeaderPrefix is the common prefix for all node auth headers
	NodeHeaderPrefix = "x-node-"

	// HeaderNodeID contains the claimed node id (40 hex characters)
	HeaderNodeID = NodeHeaderPrefix + "id"

	// HeaderPublicKey contains the sender's compressed secp256k1 public key (66 hex characters)
	HeaderPublicKey = NodeHeaderPrefix + "pubkey"

	// HeaderTimestamp contains the request creation time in milliseconds since epoch
	HeaderTimestamp = NodeHeaderPrefix + "timestamp"

	// HeaderSignature contains the hex encoded DER signature of the request sighash
	HeaderSignature = NodeHeaderPrefix + "signature"

	// HeaderForwardedProto is consulted for the protocol scheme when the proxy is trusted
	HeaderForwardedProto = "x-forwarded-proto"
)
