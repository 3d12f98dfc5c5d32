package sighash

import (
	"net/http"
	"strings"

	"github.com/bsv-blockchain/go-node-auth/pkg/constants"
	"github.com/go-softwarelab/common/pkg/to"
)

// Request holds the parts of an HTTP request which are covered by the node signature,
// together with the auth headers the request was sent with.
type Request struct {
	Method      string
	Protocol    string
	Host        string
	OriginalURL string

	Timestamp string
	PublicKey string
	Signature string

	// Body is the raw request body. Nil means the body was not made available,
	// an empty slice means the request had no body.
	Body []byte
}

// URL returns the absolute request URL in the form it is hashed.
func (r *Request) URL() string {
	return r.Protocol + "://" + r.Host + r.OriginalURL
}

type DescriptorOptions struct {
	TrustForwardedProto bool
}

// WithTrustForwardedProto makes the protocol scheme follow the x-forwarded-proto header,
// it should be enabled only behind a proxy which overwrites that header.
func WithTrustForwardedProto(trust bool) func(*DescriptorOptions) {
	return func(options *DescriptorOptions) {
		options.TrustForwardedProto = trust
	}
}

// FromHTTPRequest builds a Request from the http request and the already read raw body.
func FromHTTPRequest(r *http.Request, body []byte, opts ...func(*DescriptorOptions)) *Request {
	options := to.OptionsWithDefault(DescriptorOptions{}, opts...)

	return &Request{
		Method:      r.Method,
		Protocol:    protocol(r, options.TrustForwardedProto),
		Host:        host(r),
		OriginalURL: originalURL(r),
		Timestamp:   r.Header.Get(constants.HeaderTimestamp),
		PublicKey:   r.Header.Get(constants.HeaderPublicKey),
		Signature:   r.Header.Get(constants.HeaderSignature),
		Body:        body,
	}
}

func protocol(r *http.Request, trustForwardedProto bool) string {
	if trustForwardedProto {
		forwarded := r.Header.Get(constants.HeaderForwardedProto)
		if forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			return strings.TrimSpace(first)
		}
	}

	if r.TLS != nil {
		return "https"
	}

	// outgoing requests built by a client carry the scheme only in the URL
	if r.URL != nil && r.URL.Scheme != "" {
		return r.URL.Scheme
	}
	return "http"
}

func host(r *http.Request) string {
	if r.Host != "" {
		return r.Host
	}
	if r.URL != nil {
		return r.URL.Host
	}
	return ""
}

func originalURL(r *http.Request) string {
	// absolute-form request targets are reduced to path and query
	if strings.HasPrefix(r.RequestURI, "/") {
		return r.RequestURI
	}
	if r.URL != nil {
		return r.URL.RequestURI()
	}
	return ""
}
