package chat

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// FallbackReply is returned to the caller whenever the upstream model fails;
// chat errors never propagate out of the service.
const FallbackReply = "Entschuldigung, ich habe ein Problem. (AI出错了)"

const sessionTTL = 30 * time.Minute

// Service relays chat messages with per-conversation state keyed by a session
// id. There is no process-wide conversation; concurrent users never share
// history.
type Service struct {
	store  Store
	memory *MemoryStore // non-nil when running without Redis; swept by the janitor
	relay  Relay
	cron   *cron.Cron
}

// NewService picks Redis-backed session storage when a client is available
// and falls back to an in-process store otherwise.
func NewService(redisClient *redis.Client, relay Relay) *Service {
	svc := &Service{relay: relay}
	if redisClient != nil {
		svc.store = NewRedisStore(redisClient, sessionTTL)
	} else {
		svc.memory = NewMemoryStore(sessionTTL)
		svc.store = svc.memory
		logrus.Warn("Redis unavailable, chat sessions held in process memory")
	}
	return svc
}

// NewSessionID returns a fresh conversation identifier.
func (s *Service) NewSessionID() string {
	return uuid.New().String()
}

// Send relays one message within the session's conversation and records both
// turns. Upstream failures produce the fixed fallback reply and leave the
// history untouched.
func (s *Service) Send(ctx context.Context, sessionID, message string) string {
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		logrus.WithError(err).WithField("session", sessionID).Warn("Failed to load chat history")
		history = nil
	}

	reply, err := s.relay.Reply(ctx, history, message)
	if err != nil {
		logrus.WithError(err).WithField("session", sessionID).Error("Chat relay failed")
		return FallbackReply
	}

	if err := s.store.Append(ctx, sessionID,
		Message{Role: "user", Text: message},
		Message{Role: "model", Text: reply},
	); err != nil {
		logrus.WithError(err).WithField("session", sessionID).Warn("Failed to persist chat history")
	}
	return reply
}

// EndSession discards a conversation explicitly.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// StartJanitor schedules periodic expiry sweeps of the in-memory store. Redis
// sessions expire on their own TTL, so nothing runs in that mode.
func (s *Service) StartJanitor() {
	if s.memory == nil {
		return
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@every 10m", func() {
		if removed := s.memory.Sweep(); removed > 0 {
			logrus.WithField("removed", removed).Info("Expired chat sessions swept")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule chat session sweep")
		return
	}
	s.cron.Start()
}

// StopJanitor stops the sweep scheduler.
func (s *Service) StopJanitor() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
