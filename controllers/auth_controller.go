package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nkust-web/campus/utils"
	"github.com/sirupsen/logrus"
)

// AdminAccount is the single CMS account allowed to publish news.
type AdminAccount struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
}

func Login(account AdminAccount, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Username != account.Username || !utils.CheckPassword(input.Password, account.PasswordHash) {
			log.WithField("username", input.Username).Warn("rejected admin login")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}

		token, err := utils.GenerateJWT(account.Secret, account.Username, account.TokenTTL)
		if err != nil {
			log.WithError(err).Error("failed to sign token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
