package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/colegiospro/server/api/rest/auth"
	"codeberg.org/colegiospro/server/api/rest/chat"
	"codeberg.org/colegiospro/server/api/rest/health"
	"codeberg.org/colegiospro/server/api/rest/leads"
	"codeberg.org/colegiospro/server/api/rest/track"
	"codeberg.org/colegiospro/server/api/websocket"
	ws "codeberg.org/colegiospro/server/internal/websocket"
)

// credential exchanges get a fixed, tighter budget than public tracking
const tokenRateLimit = "10-M"

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	cfg := server.config

	router.Use(HTTPSRedirectMiddleware(cfg.IsProduction()))
	router.Use(CORSMiddleware(cfg.AllowedOrigins))
	router.GET("/health", health.Handler)

	trackLimit, err := RateLimitMiddleware(cfg.TrackRateLimit)
	if err != nil {
		return err
	}

	contactLimit, err := RateLimitMiddleware(cfg.TrackRateLimit)
	if err != nil {
		return err
	}

	tokenLimit, err := RateLimitMiddleware(tokenRateLimit)
	if err != nil {
		return err
	}

	api := router.Group("/api")

	{
		track.RegisterRoutes(api, server.relay, trackLimit)
		leads.RegisterRoutes(api, server.leadRepo, contactLimit)
		auth.RegisterRoutes(api, tokenLimit)
		chat.RegisterRoutes(api, server.relay, server.chatRepo, server.visitRepo)
	}

	websocket.RegisterRoutes(router, server.relay, ws.NewOriginChecker(cfg.IsProduction(), cfg.AllowedOrigins))

	return nil
}
