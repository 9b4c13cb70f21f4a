package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/auth_service/internal/audit"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
)

// publishEvent puts the event on the bus and into the audit index.
// Both sinks are best effort; a broker or index hiccup must not fail
// the auth operation itself.
func (s *AuthService) publishEvent(ctx context.Context, eventType string, user *models.User, ip, userAgent string) {
	l := logging.FromContext(ctx)

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event := map[string]interface{}{
		"type":    eventType,
		"user_id": user.ID.String(),
		"email":   user.Email,
	}
	if err := s.Producer.PublishEvent(pubCtx, s.EventsTopic, user.ID.String(), event); err != nil {
		l.Error("event_publish_failed", "type", eventType, "error", err)
	}

	if err := s.Audit.Write(pubCtx, audit.Event{
		Type:      eventType,
		UserID:    user.ID.String(),
		Email:     user.Email,
		IP:        ip,
		UserAgent: userAgent,
	}); err != nil {
		l.Error("audit_write_failed", "type", eventType, "error", err)
	}
}
