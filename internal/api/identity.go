package api

import (
	"net/http"
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/gin-gonic/gin"
)

const maxPlayerIDLength = 64

// PlayerRequired reads the caller's identity from the X-Player-ID header
// (and the optional X-Player-Name) and injects it into the context.
func PlayerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerID))
		if id == "" || len(id) > maxPlayerIDLength {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
			return
		}
		name := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerName))
		if name == "" {
			name = id
		}
		c.Set(constants.ContextPlayerID, id)
		c.Set(constants.ContextPlayerName, name)
		c.Next()
	}
}

func playerFromContext(c *gin.Context) (id, name string) {
	return c.GetString(constants.ContextPlayerID), c.GetString(constants.ContextPlayerName)
}
