package main

import (
	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/leads"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/buffer"
	"codeberg.org/colegiospro/server/internal/config"
	"codeberg.org/colegiospro/server/internal/relay"
	"codeberg.org/colegiospro/server/internal/storage"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *storage.Client
	config    *config.Config
	chatRepo  chats.Repository
	visitRepo visits.Repository
	leadRepo  leads.Repository
	relay     *relay.Router
	router    *gin.Engine

	// nil when REDIS_URL is not set
	buffer  *buffer.ChatBuffer
	flusher *buffer.Flusher
}

// adapts the chat and visit repositories to the relay's durable log
type relayStore struct {
	chats  chats.Repository
	visits visits.Repository
}
