package testabilities

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/bsv-blockchain/go-node-auth/pkg/middleware/httperror"
	"github.com/stretchr/testify/assert"
)

type ResponseAssertion interface {
	HasStatus(statusCode int) ResponseAssertion
	HasHeader(headerName string) ResponseAssertion
	HasBody(expectedBody string) ResponseAssertion
	IsRejectedWith(code string) ResponseAssertion
}

type httpResponseAssertion struct {
	testing.TB

	response *http.Response
}

func NewResponseAssertion(t testing.TB, response *http.Response) ResponseAssertion {
	return &httpResponseAssertion{
		TB:       t,
		response: response,
	}
}

func (a *httpResponseAssertion) HasStatus(status int) ResponseAssertion {
	a.Helper()
	assert.Equalf(a, status, a.response.StatusCode, "fetch should return status %d", status)
	return a
}

func (a *httpResponseAssertion) HasHeader(headerName string) ResponseAssertion {
	a.Helper()
	assert.NotEmptyf(a, a.response.Header.Get(headerName), "response should have header %s", headerName)
	return a
}

func (a *httpResponseAssertion) HasBody(body string) ResponseAssertion {
	a.Helper()
	responseBody, err := io.ReadAll(a.response.Body)
	if assert.NoError(a, err, "body should be readable") {
		assert.Equal(a, body, string(responseBody))
	}
	return a
}

// IsRejectedWith checks the response is the auth middleware rejection with given error code.
func (a *httpResponseAssertion) IsRejectedWith(code string) ResponseAssertion {
	a.Helper()
	a.HasStatus(http.StatusUnauthorized)

	var body httperror.Response
	err := json.NewDecoder(a.response.Body).Decode(&body)
	if assert.NoError(a, err, "rejection body should be JSON error response") {
		assert.Equal(a, "error", body.Status)
		assert.Equalf(a, code, body.Code, "request should be rejected with %s", code)
		assert.NotEmpty(a, body.Description)
	}
	return a
}
