package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenContextKey is where the raw login token is stored in the gin context.
const TokenContextKey = "login_token"

// TokenExtractionMiddleware pulls the login token out of the authorization
// header. Validation happens in the handlers because it also needs the
// email carried in the request body; legacy clients send the bare token,
// newer ones the usual "Bearer <token>" form, both are accepted.
func TokenExtractionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			token := header
			if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
			c.Set(TokenContextKey, token)
		}
		c.Next()
	}
}

// TokenFromContext returns the login token extracted from the request, if any.
func TokenFromContext(c *gin.Context) (string, bool) {
	token := c.GetString(TokenContextKey)
	return token, token != ""
}
