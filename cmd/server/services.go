package main

import (
	"context"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
)

func (s *relayStore) SaveMessage(ctx context.Context, msg *chats.Message) error {
	return s.chats.SaveMessage(ctx, msg)
}

func (s *relayStore) SaveVisit(ctx context.Context, visit *visits.Visit) error {
	return s.visits.SaveVisit(ctx, visit)
}
