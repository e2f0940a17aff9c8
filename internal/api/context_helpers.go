package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated UID set by the auth middleware. When
// missing it writes the error response itself and returns ok=false.
func currentUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	uid, ok := rawUserID.(string)
	if !ok || uid == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return "", false
	}
	return uid, true
}

// contextString returns a string claim set by the auth middleware, or "".
func contextString(c *gin.Context, key string) string {
	raw, _ := c.Get(key)
	s, _ := raw.(string)
	return s
}
