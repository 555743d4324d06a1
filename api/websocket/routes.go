package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/colegiospro/server/internal/relay"
)

func RegisterRoutes(router gin.IRoutes, relayRouter *relay.Router, checkOrigin func(*http.Request) bool) {
	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	router.GET("/ws/chat", VisitorHandler(relayRouter, upgrader))
	router.GET("/ws/admin", AdminHandler(relayRouter, upgrader))
}
