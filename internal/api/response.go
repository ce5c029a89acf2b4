package api

import (
	"alcyxob/gym-system/internal/i18n"
	"alcyxob/gym-system/internal/service"

	"github.com/gin-gonic/gin"
)

// respond writes {"message": <localized key>, payloadKey: payload}. An empty
// payloadKey sends the message only.
func respond(c *gin.Context, status int, key string, payloadKey string, payload any, args ...any) {
	body := gin.H{"message": i18n.T(languageOf(c), key, args...)}
	if payloadKey != "" {
		body[payloadKey] = payload
	}
	c.JSON(status, body)
}

// caller returns the authenticated principal. Routes using it sit behind
// AuthMiddleware, so a missing principal is a wiring bug.
func caller(c *gin.Context) service.Principal {
	p, _ := principalOf(c)
	return p
}
