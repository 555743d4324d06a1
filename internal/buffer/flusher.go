package buffer

import (
	"context"
	"sync"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/internal/logger"
)

// handles periodic flushing of buffered messages from Redis to Postgres
type Flusher struct {
	buffer   MessageBuffer
	repo     chats.Repository
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// creates a new flusher that periodically flushes Redis to Postgres
func NewFlusher(buffer MessageBuffer, repo chats.Repository, interval time.Duration) *Flusher {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	return &Flusher{
		buffer:   buffer,
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// begins the background flush loop
func (f *Flusher) Start() {
	f.wg.Add(1)
	go f.run()
	logger.Info("buffer flusher started", "interval", f.interval.String())
}

// gracefully stops the flusher and flushes any remaining data
func (f *Flusher) Stop() {
	f.stopOnce.Do(func() {
		close(f.stopCh)
	})

	f.wg.Wait()
	logger.Info("buffer flusher stopped")
}

func (f *Flusher) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.Flush()
		case <-f.stopCh:
			// final flush before stopping
			logger.Info("flushing remaining buffer data before shutdown")
			f.Flush()
			return
		}
	}
}

// writes every dirty session to Postgres
func (f *Flusher) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	sessionIDs, err := f.buffer.DirtySessions(ctx)
	if err != nil {
		logger.ErrorErr(err, "failed to get dirty chat sessions")
		return
	}

	if len(sessionIDs) == 0 {
		return
	}

	logger.Debug("flushing messages for sessions", "count", len(sessionIDs))

	for _, sessionID := range sessionIDs {
		if err := f.FlushSession(ctx, sessionID); err != nil {
			logger.ErrorErr(err, "failed to flush messages from buffer", "session_id", sessionID)
		}
	}
}

// immediately flushes all buffered messages for a specific session
func (f *Flusher) FlushSession(ctx context.Context, sessionID string) error {
	messages, err := f.buffer.FlushMessages(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := f.repo.SaveMessage(ctx, msg); err != nil {
			logger.ErrorErr(err, "failed to persist message to postgres",
				"session_id", msg.SessionID,
				"sender", msg.Sender,
			)

			// re-add failed message to buffer so the next pass retries it
			f.buffer.AddMessage(ctx, msg) //nolint:errcheck,gosec // best-effort retry
		}
	}

	return nil
}
