package middleware

import "github.com/gin-gonic/gin"

// Keys used to store the authenticated principal in the Gin context.
// Using a custom type prevents collisions.
const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return getStringFromContext(c, userIDKey)
}

// GetCompanyIDFromContext retrieves the authenticated user's company scope.
// All bookkeeping operations are tenant-scoped by this value.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	return getStringFromContext(c, companyIDKey)
}

func getStringFromContext(c *gin.Context, key contextKey) (string, bool) {
	val, exists := c.Get(string(key))
	if !exists {
		// check the request context as well
		ctxVal := c.Request.Context().Value(key)
		if s, ok := ctxVal.(string); ok {
			return s, true
		}
		return "", false
	}
	s, ok := val.(string)
	if !ok {
		return "", false
	}
	return s, true
}
