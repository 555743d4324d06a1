package relay

import (
	"context"
	"strings"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/logger"
)

// notable tracking actions pushed to admins in real time
var notableActions = map[string]bool{
	ActionChatOpened:   true,
	ActionPWAInstalled: true,
}

// creates a router over the given registry and admin set; delay is the
// simulated typing time before an auto-reply
func NewRouter(registry *Registry, admins *AdminSet, store Store, replies *AutoReplier, delay time.Duration) *Router {
	ctx, cancel := context.WithCancel(context.Background())

	if replies == nil {
		replies = DefaultAutoReplier()
	}

	r := &Router{
		registry: registry,
		admins:   admins,
		store:    store,
		replies:  replies,
		delay:    delay,
		ctx:      ctx,
		cancel:   cancel,
	}

	registry.OnChange(r.handleRegistryChange)

	return r
}

// sets a callback run after a visitor session is removed
func (r *Router) OnVisitorDisconnect(callback func(session VisitorSession)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onVisitor = callback
}

func (r *Router) Registry() *Registry {
	return r.registry
}

func (r *Router) Admins() *AdminSet {
	return r.admins
}

// fans presence changes out to admins
func (r *Router) handleRegistryChange(eventType string, session VisitorSession, total int) {
	event := VisitorPresenceEvent{
		Type:          eventType,
		SessionID:     session.SessionID,
		Ref:           session.Ref,
		DisplayName:   session.DisplayName,
		RoleLabel:     session.RoleLabel,
		ConnectedAt:   session.ConnectedAt,
		TotalVisitors: total,
	}

	if eventType == TypeVisitorConnected {
		r.NotifyAdmins(event)
		return
	}

	// disconnects may come from a failed write deep inside a delivery,
	// so the broadcast runs on its own task
	r.mu.RLock()
	callback := r.onVisitor
	r.mu.RUnlock()

	r.Go(func() {
		r.NotifyAdmins(event)

		if callback != nil {
			callback(session)
		}
	})
}

// delivers an event to every admin; failing sockets are dropped
func (r *Router) NotifyAdmins(event any) {
	for _, conn := range r.admins.Members() {
		if err := conn.Send(event); err != nil {
			logger.Warn("dropping admin connection after failed delivery", "error", err)
			r.admins.Remove(conn)
			conn.Close()
		}
	}
}

// delivers an event to one visitor; a failed write counts as a disconnect
func (r *Router) DeliverToVisitor(sessionID string, event any) {
	conn, exists := r.registry.conn(sessionID)
	if !exists {
		return
	}

	if err := conn.Send(event); err != nil {
		logger.Warn("visitor delivery failed, unregistering",
			"session_id", sessionID,
			"error", err,
		)
		r.registry.Unregister(sessionID)
	}
}

// registers an admin socket and sends it the current visitor list
func (r *Router) ConnectAdmin(conn Conn) {
	r.admins.Add(conn)

	snapshot := r.registry.Snapshot()
	visitors := make([]VisitorInfo, 0, len(snapshot))
	for _, s := range snapshot {
		visitors = append(visitors, s.Info())
	}

	err := conn.Send(VisitorListEvent{
		Type:     TypeVisitorList,
		Visitors: visitors,
		Total:    len(visitors),
	})
	if err != nil {
		logger.Warn("failed to send visitor list to admin", "error", err)
		r.DisconnectAdmin(conn)
		return
	}

	logger.Info("admin connected", "admins_online", r.admins.Count())
}

func (r *Router) DisconnectAdmin(conn Conn) {
	r.admins.Remove(conn)
	conn.Close()
	logger.Info("admin disconnected", "admins_online", r.admins.Count())
}

// persists a visitor message and forwards it to admins; returns false when
// the text is blank and nothing was routed
func (r *Router) RouteVisitorMessage(ctx context.Context, sessionID, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	session, _ := r.registry.Get(sessionID)
	now := time.Now().UTC()

	r.persistMessage(ctx, &chats.Message{
		SessionID:   sessionID,
		Ref:         session.Ref,
		DisplayName: session.DisplayName,
		RoleLabel:   session.RoleLabel,
		Sender:      chats.SenderVisitor,
		Content:     text,
		CreatedAt:   now,
	})

	r.registry.Touch(sessionID, now)

	r.NotifyAdmins(VisitorMessageEvent{
		Type:        TypeVisitorMessage,
		SessionID:   sessionID,
		Ref:         session.Ref,
		DisplayName: session.DisplayName,
		RoleLabel:   session.RoleLabel,
		Text:        text,
		Timestamp:   now,
	})

	return true
}

// routes a visitor message and, when no admin is online, answers it with an
// auto-reply; blocks the calling handler for the typing delay only
func (r *Router) HandleVisitorMessage(ctx context.Context, sessionID, text string) {
	if !r.RouteVisitorMessage(ctx, sessionID, text) {
		return
	}

	if !r.admins.IsEmpty() {
		return
	}

	r.autoReply(ctx, sessionID, text)
}

func (r *Router) autoReply(ctx context.Context, sessionID, text string) {
	session, _ := r.registry.Get(sessionID)
	count := session.MessageCount

	r.DeliverToVisitor(sessionID, TypingEvent{Type: TypeTyping})

	// a visitor leaving mid-delay still gets the reply stored; only shutdown aborts
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if r.ctx.Err() != nil {
				return
			}
		case <-r.ctx.Done():
			timer.Stop()
			return
		}
	}

	reply := r.replies.Reply(text, count)
	now := time.Now().UTC()

	r.persistMessage(ctx, &chats.Message{
		SessionID:   sessionID,
		Ref:         session.Ref,
		DisplayName: session.DisplayName,
		RoleLabel:   session.RoleLabel,
		Sender:      chats.SenderAdmin,
		Content:     reply,
		CreatedAt:   now,
	})

	r.DeliverToVisitor(sessionID, MessageEvent{
		Type:      TypeMessage,
		Text:      reply,
		Timestamp: now,
	})

	logger.Debug("auto-reply sent",
		"session_id", sessionID,
		"message_count", count,
	)
}

// persists an admin reply and delivers it to the target visitor; ref and
// displayName are used only when the visitor is no longer online
func (r *Router) RouteAdminMessage(ctx context.Context, sessionID, text, ref, displayName string) {
	session, online := r.registry.Get(sessionID)
	if online {
		ref = session.Ref
		displayName = session.DisplayName
	}

	now := time.Now().UTC()

	r.persistMessage(ctx, &chats.Message{
		SessionID:   sessionID,
		Ref:         ref,
		DisplayName: displayName,
		RoleLabel:   session.RoleLabel,
		Sender:      chats.SenderAdmin,
		Content:     text,
		CreatedAt:   now,
	})

	r.DeliverToVisitor(sessionID, MessageEvent{
		Type:      TypeMessage,
		Text:      text,
		Timestamp: now,
	})
}

// shows the typing indicator to a visitor
func (r *Router) RouteAdminTyping(sessionID string) {
	r.DeliverToVisitor(sessionID, TypingEvent{Type: TypeTyping})
}

// persists a tracking event and pushes notable ones to admins; the returned
// error reports only the persistence outcome
func (r *Router) RouteTrackEvent(ctx context.Context, visit *visits.Visit) error {
	if visit.Ref == "" {
		visit.Ref = DefaultRef
	}

	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now().UTC()
	}

	err := r.persistVisit(ctx, visit)

	if notableActions[visit.Action] {
		r.NotifyAdmins(TrackEventNotice{
			Type:        TypeTrackEvent,
			Action:      visit.Action,
			Ref:         visit.Ref,
			DisplayName: visit.DisplayName,
			RoleLabel:   visit.RoleLabel,
			Timestamp:   visit.CreatedAt,
		})
	}

	return err
}

// persistence outlives the socket that triggered it
func (r *Router) persistMessage(ctx context.Context, msg *chats.Message) {
	if r.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := r.store.SaveMessage(ctx, msg); err != nil {
		logger.ErrorErr(err, "failed to persist chat message",
			"session_id", msg.SessionID,
			"sender", msg.Sender,
		)
	}
}

func (r *Router) persistVisit(ctx context.Context, visit *visits.Visit) error {
	if r.store == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := r.store.SaveVisit(ctx, visit); err != nil {
		logger.ErrorErr(err, "failed to persist visit",
			"action", visit.Action,
			"ref", visit.Ref,
		)
		return err
	}

	return nil
}
