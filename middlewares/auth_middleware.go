package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nkust-web/campus/utils"
)

// AuthMiddleware admits requests carrying a valid admin token.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		username, err := utils.ParseJWT(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
