package ginadapter

import (
	"net/http"

	"github.com/bsv-blockchain/go-node-auth/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin handler for node request authentication.
// Rejected requests are answered by the middleware error handler and the gin chain is aborted.
func AuthMiddleware(opts ...func(*middleware.AuthMiddlewareConfig)) gin.HandlerFunc {
	return FromFactory(middleware.NewAuth(opts...))
}

// FromFactory creates a Gin handler from already configured auth middleware factory.
func FromFactory(factory *middleware.AuthMiddlewareFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := false

		handler := factory.HTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated = true
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		if !authenticated {
			c.Abort()
		}
	}
}
