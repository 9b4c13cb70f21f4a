package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/auth_service/internal/audit"
	"github.com/Skotchmaster/auth_service/internal/logging"
)

// RevokeSession flips the user's session to invalid, which blocks
// their logins until ClearSession removes the row.
func (s *AuthService) RevokeSession(ctx context.Context, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "auth.revoke_session", "user_id", userID)

	if err := s.Repo.MarkSessionInvalid(ctx, userID); err != nil {
		l.Error("revoke_failed", "error", err)
		return err
	}

	if user, err := s.Repo.FindUserByID(ctx, userID); err == nil {
		s.publishEvent(ctx, audit.EventSessionRevoke, user, "", "")
	}
	l.Info("revoke_ok")
	return nil
}

// ClearSession is the administrative reset for a revoked (or stale)
// session row.
func (s *AuthService) ClearSession(ctx context.Context, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "auth.clear_session", "user_id", userID)

	if err := s.Repo.DeleteSessionByUser(ctx, userID); err != nil {
		l.Error("clear_failed", "error", err)
		return err
	}
	l.Info("clear_ok")
	return nil
}
