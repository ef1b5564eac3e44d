package middleware

import "github.com/gin-gonic/gin"

// operatorKey is the key used to store the authenticated operator name in
// the request context.
const operatorKey = contextKey("operator")

// GetOperatorFromContext retrieves the authenticated operator name from the
// Gin context. It returns the name and a boolean indicating if it was found.
func GetOperatorFromContext(c *gin.Context) (string, bool) {
	if val := c.Request.Context().Value(operatorKey); val != nil {
		operator, ok := val.(string)
		return operator, ok
	}
	return "", false
}
