package relay

import (
	"context"

	"codeberg.org/colegiospro/server/internal/logger"
)

// returns the relay lifetime context, canceled on shutdown
func (r *Router) Context() context.Context {
	return r.ctx
}

// runs fn on a background task bound to the relay lifetime
func (r *Router) Go(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return
	}

	r.tasks.Go(func() error {
		fn()
		return nil
	})
}

// closes every socket and waits for background tasks to finish
func (r *Router) Shutdown() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	r.cancel()

	logger.Info("closing relay connections",
		"visitors", r.registry.Count(),
		"admins", r.admins.Count(),
	)

	r.registry.closeAll()
	r.admins.closeAll()

	r.tasks.Wait() //nolint:errcheck // tasks never return errors

	logger.Info("relay stopped")
}
