package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/auth"
	apierrors "codeberg.org/colegiospro/server/internal/errors"
	"codeberg.org/colegiospro/server/internal/logger"
	"codeberg.org/colegiospro/server/internal/relay"
	ws "codeberg.org/colegiospro/server/internal/websocket"
)

// handles visitor chat sockets on GET /ws/chat
func VisitorHandler(router *relay.Router, upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params VisitorParams
		if err := c.ShouldBindQuery(&params); err != nil {
			apierrors.BadRequest(c, "invalid parameters", err)
			return
		}

		// the stored ref and the session id prefix share one alphabet
		ref := ws.SanitizeRef(strings.TrimSpace(params.Ref))
		if ref == "" {
			ref = relay.DefaultRef
		}

		displayName := firstNonEmpty(params.DisplayName, params.Nombre)
		roleLabel := firstNonEmpty(params.RoleLabel, params.Cargo)
		ipAddress := c.ClientIP()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade visitor connection", "ip", ipAddress)
			return
		}

		client := ws.NewClient(ws.GenerateClientID(), "", ws.RoleVisitor, ipAddress, conn)

		sessionID, err := registerVisitor(router.Registry(), client, ref, displayName, roleLabel)
		if err != nil {
			logger.ErrorErr(err, "failed to register visitor", "ip", ipAddress, "ref", ref)
			conn.Close() //nolint:errcheck,gosec // G104: failed setup
			return
		}

		go client.WritePump()

		// the connect visit is tracked like any other action
		visit := &visits.Visit{
			Ref:         ref,
			DisplayName: displayName,
			RoleLabel:   roleLabel,
			Action:      relay.ActionWSConnected,
			ClientIP:    ipAddress,
			UserAgent:   c.Request.UserAgent(),
		}
		router.RouteTrackEvent(c.Request.Context(), visit) //nolint:errcheck,gosec // logged by the router

		ctx, cancel := context.WithCancel(router.Context())

		go client.ReadPump(
			func(data []byte) {
				router.HandleVisitorMessage(ctx, sessionID, visitorText(data))
			},
			func() {
				cancel()
				router.Registry().Unregister(sessionID)
			},
		)

		logger.Info("visitor websocket connection established",
			"client_id", client.ID,
			"session_id", sessionID,
			"ref", ref,
			"ip", ipAddress,
		)
	}
}

// handles operator sockets on GET /ws/admin
func AdminHandler(router *relay.Router, upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params AdminParams
		if err := c.ShouldBindQuery(&params); err != nil {
			apierrors.BadRequest(c, "invalid parameters", err)
			return
		}

		ipAddress := c.ClientIP()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade admin connection", "ip", ipAddress)
			return
		}

		// the close code tells the admin UI to ask for the key again
		if !auth.IsAdmin(params.Key, params.Token) {
			logger.Warn("admin websocket rejected", "ip", ipAddress)
			ws.CloseWithCode(conn, ws.CloseUnauthorized, "unauthorized")
			return
		}

		client := ws.NewClient(ws.GenerateClientID(), "", ws.RoleAdmin, ipAddress, conn)
		go client.WritePump()

		router.ConnectAdmin(client)
		if client.IsClosed() {
			return
		}

		ctx, cancel := context.WithCancel(router.Context())

		go client.ReadPump(
			func(data []byte) {
				handleAdminFrame(ctx, router, client, data)
			},
			func() {
				cancel()
				router.DisconnectAdmin(client)
			},
		)

		logger.Info("admin websocket connection established",
			"client_id", client.ID,
			"ip", ipAddress,
		)
	}
}

// mints a fresh session id until the registry accepts it
func registerVisitor(registry *relay.Registry, client *ws.Client, ref, displayName, roleLabel string) (string, error) {
	var err error

	for range maxSessionIDAttempts {
		sessionID := ws.GenerateSessionID(ref)
		client.SessionID = sessionID

		_, err = registry.Register(sessionID, ref, displayName, roleLabel, client)
		if err == nil {
			return sessionID, nil
		}

		if !errors.Is(err, relay.ErrSessionExists) {
			return "", err
		}
	}

	return "", err
}

func handleAdminFrame(ctx context.Context, router *relay.Router, client *ws.Client, data []byte) {
	var frame adminFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		logger.Debug("discarding malformed admin frame", "client_id", client.ID, "error", err)
		return
	}

	switch frame.Type {
	case adminTypeMessage:
		if frame.SessionID == "" || strings.TrimSpace(frame.Text) == "" {
			return
		}

		router.RouteAdminMessage(ctx, frame.SessionID, frame.Text, frame.Ref, firstNonEmpty(frame.DisplayName, frame.Nombre))

	case adminTypeTyping:
		if frame.SessionID == "" {
			return
		}

		router.RouteAdminTyping(frame.SessionID)

	default:
		logger.Debug("ignoring admin frame", "client_id", client.ID, "type", frame.Type)
	}
}

// extracts the message text from a visitor frame
func visitorText(data []byte) string {
	var frame visitorFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return string(data)
	}

	return frame.Text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
