package chat

import (
	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/auth"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, relayRouter *relay.Router, chatRepo chats.Repository, visitRepo visits.Repository) {
	admin := router.Group("")
	admin.Use(auth.AdminMiddleware())

	admin.GET("/chat/stats", Stats(relayRouter))
	admin.GET("/chat/history/:session_id", History(chatRepo))
	admin.GET("/chat/sessions", Sessions(chatRepo, relayRouter))
	admin.GET("/visits", Visits(visitRepo))
}
