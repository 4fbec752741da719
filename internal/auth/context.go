package auth

import "github.com/gin-gonic/gin"

// GetAdminID returns the authenticated admin's ID or empty string.
func GetAdminID(c *gin.Context) string {
	if v, ok := c.Get("adminID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetAdminUsername returns the authenticated admin's username or empty string.
func GetAdminUsername(c *gin.Context) string {
	if v, ok := c.Get("adminUsername"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
