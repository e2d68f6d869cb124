package service

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/logger"
)

// SessionService owns cache lifecycle around the session: a full clear at
// logout and on upstream session expiry (401). Cached moderation data must
// not outlive the session that fetched it.
type SessionService interface {
	Logout(ctx context.Context)
	// OnSessionExpired is wired into the upstream client's 401 hook.
	OnSessionExpired()
}

type sessionService struct {
	cache *cache.Store
	log   *logger.Logger
}

func NewSessionService(store *cache.Store, log *logger.Logger) SessionService {
	return &sessionService{cache: store, log: log}
}

func (s *sessionService) Logout(ctx context.Context) {
	s.log.WithContext(ctx).Infow("logout, clearing query cache")
	s.cache.Clear()
}

func (s *sessionService) OnSessionExpired() {
	s.log.Warnw("upstream session expired, clearing query cache")
	s.cache.Clear()
}
