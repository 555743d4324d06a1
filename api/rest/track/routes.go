package track

import (
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, relayRouter *relay.Router, limit gin.HandlerFunc) {
	router.POST("/track", limit, Track(relayRouter))
}
