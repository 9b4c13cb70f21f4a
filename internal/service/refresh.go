package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

// Refresh validates the signed refresh cookie against the stored
// session and reissues a short-lived access token. The session secret
// stays the same; only the access credential rotates.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if s.Stateless {
		return nil, ErrRefreshDisabled
	}
	if refreshToken == "" {
		return nil, ErrInvalidRefresh
	}

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "bad signature or expired")
		return nil, ErrInvalidRefresh
	}

	sess, err := s.Repo.FindSessionByUser(ctx, claims.User.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 401, "reason", "no session")
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if !sess.IsValid ||
		subtle.ConstantTimeCompare([]byte(sess.RefreshSecret), []byte(claims.RefreshSecret)) != 1 {
		l.Warn("refresh_failed", "status", 401, "reason", "session invalid or secret mismatch")
		return nil, ErrInvalidRefresh
	}

	// Re-read the user so a renamed account does not keep stale claims
	// alive for another 30 days.
	user, err := s.Repo.FindUserByID(ctx, claims.User.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	tokenUser := models.NewTokenUser(user)
	accessExp := time.Now().Add(s.AccessTTL)
	access, err := tokens.NewAccessToken(tokenUser, s.AccessSecret, accessExp)
	if err != nil {
		return nil, err
	}

	l.Info("refresh_ok", "user_id", user.ID)
	return &LoginResult{
		User:        tokenUser,
		AccessToken: access,
		AccessExp:   accessExp,
	}, nil
}
