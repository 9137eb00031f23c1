package middleware

import (
	"net/http"
	"strings"

	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie that carries the session token.
const SessionCookieName = "fruitdist_session"

// sessionToken extracts the raw session token from the request: the session
// cookie for the browser console, or a Bearer header for API clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// SessionMiddleware gates privileged routes on a valid session.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("staff_email", claims.Email)
		c.Set("staff_job", claims.Job)
		c.Next()
	}
}

// ManagerMiddleware requires the manager role on top of a valid session.
func ManagerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		job, exists := c.Get("staff_job")
		if !exists || job != "manager" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
