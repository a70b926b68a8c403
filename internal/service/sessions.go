package service

import (
	"context"
	"log/slog"
	"time"
)

// SessionCount returns the number of sessions held in memory.
func (s *StorefrontService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle drops sessions not touched within olderThan. Their state is
// already persisted, so the next request restores it. It holds s.mu for the
// whole sweep; session() touches under the same lock.
func (s *StorefrontService) EvictIdle(olderThan time.Duration) int {
	cutoff := s.now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, st := range s.sessions {
		if st.LastTouched().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunEvictor evicts idle sessions every interval until ctx is cancelled.
func (s *StorefrontService) RunEvictor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(idle); n > 0 {
				s.logger.Info("evicted idle sessions",
					slog.Int("count", n),
					slog.Int("remaining", s.SessionCount()),
				)
			}
		}
	}
}
