package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/leads"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/buffer"
	"codeberg.org/colegiospro/server/internal/config"
	"codeberg.org/colegiospro/server/internal/logger"
	"codeberg.org/colegiospro/server/internal/relay"
	"codeberg.org/colegiospro/server/internal/storage"
	"github.com/gin-gonic/gin"
)

// upper bound for the write-through flush after a visitor leaves
const disconnectFlushTimeout = 10 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	postgresChatRepo := chats.NewRepository(db.Pool())
	visitRepo := visits.NewRepository(db.Pool())
	leadRepo := leads.NewRepository(db.Pool())

	server := &Server{
		db:        db,
		config:    cfg,
		chatRepo:  postgresChatRepo,
		visitRepo: visitRepo,
		leadRepo:  leadRepo,
	}

	// redis is optional, without it chat messages go straight to postgres
	if cfg.RedisURL != "" {
		chatBuffer, err := buffer.NewChatBuffer(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize redis buffer: %w", err)
		}

		server.buffer = chatBuffer
		server.chatRepo = buffer.NewBufferedRepository(postgresChatRepo, chatBuffer)
		server.flusher = buffer.NewFlusher(chatBuffer, postgresChatRepo, buffer.DefaultFlushInterval)

		logger.Info("chat buffer enabled", "flush_interval", buffer.DefaultFlushInterval)
	}

	replies, err := config.LoadAutoReplier(cfg.AutoRepliesFile)
	if err != nil {
		server.closeStorage()
		return nil, err
	}

	store := &relayStore{chats: server.chatRepo, visits: visitRepo}
	server.relay = relay.NewRouter(relay.NewRegistry(), relay.NewAdminSet(), store, replies, cfg.AutoReplyDelay)

	// flush buffer on visitor disconnect
	if server.flusher != nil {
		flusher := server.flusher
		server.relay.OnVisitorDisconnect(func(session relay.VisitorSession) {
			ctx, cancel := context.WithTimeout(context.Background(), disconnectFlushTimeout)
			defer cancel()

			if err := flusher.FlushSession(ctx, session.SessionID); err != nil {
				logger.ErrorErr(err, "failed to flush buffer on disconnect",
					"session_id", session.SessionID,
				)
				return
			}

			logger.Debug("buffer flushed on disconnect", "session_id", session.SessionID)
		})
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server.router = gin.Default()

	if err := RegisterRoutes(server.router, server); err != nil {
		server.relay.Shutdown()
		server.closeStorage()
		return nil, err
	}

	return server, nil
}

// stops the relay, drains the chat buffer and closes storage
func (s *Server) Close() {
	if s.relay != nil {
		s.relay.Shutdown()
	}

	if s.flusher != nil {
		s.flusher.Stop()
	}

	s.closeStorage()
}

func (s *Server) closeStorage() {
	if s.buffer != nil {
		if err := s.buffer.Close(); err != nil {
			logger.ErrorErr(err, "failed to close redis buffer")
		}
	}

	s.db.Close()
}
