package auth

import "github.com/gin-gonic/gin"

const (
	ctxKeyUserID    = "userID"
	ctxKeyUserEmail = "userEmail"
	ctxKeyIsAdmin   = "isSystemAdmin"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxKeyUserEmail)
}

// SetSystemAdmin records the admin flag resolved by RequireSystemAdmin or LoadViewer.
func SetSystemAdmin(c *gin.Context, isAdmin bool) {
	c.Set(ctxKeyIsAdmin, isAdmin)
}

// IsSystemAdmin reports the admin flag stored on the context; false when never resolved.
func IsSystemAdmin(c *gin.Context) bool {
	return c.GetBool(ctxKeyIsAdmin)
}
