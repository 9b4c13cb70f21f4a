package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/audit"
	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/mailer"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/mykafka"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

type AuthService struct {
	Repo     repo.GormRepo
	Mailer   mailer.Mailer
	Producer *mykafka.Producer
	Audit    *audit.Writer

	AccessSecret  []byte
	RefreshSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Stateless skips the session store entirely and issues a single
	// long-lived signed cookie.
	Stateless bool

	// LogoutPolicy is config.LogoutPolicyDelete or
	// config.LogoutPolicyInvalidate. Delete lets the user open a fresh
	// session on the next login; invalidate locks them out until an
	// admin clears the row.
	LogoutPolicy string

	OriginURL   string
	EventsTopic string
}

type LoginResult struct {
	User models.TokenUser

	AccessToken string
	AccessExp   time.Time

	// Empty in stateless mode.
	RefreshToken string
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || name == "" || password == "" {
		return ErrMissingFields
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return err
	}

	verificationToken, err := tokens.NewSecret()
	if err != nil {
		return err
	}

	user := models.User{
		Email:             email,
		Name:              name,
		PasswordHash:      pwHash,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.Repo.RegisterUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_failed", "status", 400, "reason", "email taken")
			return err
		}
		l.Error("register_failed", "status", 500, "error", err)
		return err
	}

	mail := mailer.VerificationEmail{
		Email:             user.Email,
		Name:              user.Name,
		VerificationToken: user.VerificationToken,
		Origin:            s.OriginURL,
	}
	if err := s.Mailer.SendVerificationEmail(ctx, mail); err != nil {
		// User row is already committed; surface the failure instead of
		// letting the mail silently never arrive.
		l.Error("register_failed", "status", 502, "reason", "mail dispatch", "error", err)
		return errors.Join(ErrMailDispatch, err)
	}

	s.publishEvent(ctx, audit.EventRegistered, &user, "", "")
	l.Info("register_ok", "user_id", user.ID, "role", user.Role)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		l.Warn("login_failed", "status", 401, "reason", "not verified")
		return nil, ErrNotVerified
	}

	tokenUser := models.NewTokenUser(user)
	now := time.Now()

	if s.Stateless {
		exp := now.Add(s.RefreshTTL)
		access, err := tokens.NewAccessToken(tokenUser, s.AccessSecret, exp)
		if err != nil {
			return nil, err
		}
		s.publishEvent(ctx, audit.EventLoggedIn, user, ip, userAgent)
		return &LoginResult{User: tokenUser, AccessToken: access, AccessExp: exp}, nil
	}

	refreshSecret, err := s.sessionSecret(ctx, user, ip, userAgent)
	if err != nil {
		return nil, err
	}

	accessExp := now.Add(s.AccessTTL)
	access, err := tokens.NewAccessToken(tokenUser, s.AccessSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := now.Add(s.RefreshTTL)
	refresh, err := tokens.NewRefreshToken(tokenUser, refreshSecret, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, audit.EventLoggedIn, user, ip, userAgent)
	l.Info("login_ok", "user_id", user.ID)

	return &LoginResult{
		User:         tokenUser,
		AccessToken:  access,
		AccessExp:    accessExp,
		RefreshToken: refresh,
		RefreshExp:   refreshExp,
	}, nil
}

// sessionSecret returns the refresh secret for the user's session,
// reusing an existing valid session instead of rotating it. A session
// that was marked invalid blocks the login entirely until an admin
// clears it.
func (s *AuthService) sessionSecret(ctx context.Context, user *models.User, ip, userAgent string) (string, error) {
	existing, err := s.Repo.FindSessionByUser(ctx, user.ID)
	if err == nil {
		if !existing.IsValid {
			return "", ErrInvalidCredentials
		}
		return existing.RefreshSecret, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	secret, err := tokens.NewSecret()
	if err != nil {
		return "", err
	}
	sess := models.Session{
		UserID:        user.ID,
		RefreshSecret: secret,
		IsValid:       true,
		IP:            ip,
		UserAgent:     userAgent,
	}
	if err := s.Repo.CreateSession(ctx, &sess); err != nil {
		return "", err
	}
	return secret, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	if s.Stateless {
		// Nothing stored server side; the handler expires the cookie.
		return nil
	}

	var err error
	switch s.LogoutPolicy {
	case config.LogoutPolicyInvalidate:
		err = s.Repo.MarkSessionInvalid(ctx, userID)
	default:
		err = s.Repo.DeleteSessionByUser(ctx, userID)
	}
	if err != nil {
		l.Error("logout_failed", "error", err)
		return err
	}

	if user, uerr := s.Repo.FindUserByID(ctx, userID); uerr == nil {
		s.publishEvent(ctx, audit.EventLoggedOut, user, "", "")
	}
	l.Info("logout_ok")
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, verificationToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.verify_email")

	if email == "" || verificationToken == "" {
		return ErrMissingFields
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("verify_failed", "status", 400, "reason", "unknown email")
			return ErrUnknownEmail
		}
		return err
	}

	if user.VerificationToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.VerificationToken), []byte(verificationToken)) != 1 {
		l.Warn("verify_failed", "status", 400, "reason", "token mismatch")
		return ErrVerificationToken
	}

	now := time.Now()
	user.IsVerified = true
	user.VerifiedAt = &now
	// Single use: clearing the token makes a repeat call fail the match.
	user.VerificationToken = ""

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	s.publishEvent(ctx, audit.EventEmailVerified, user, "", "")
	l.Info("verify_ok", "user_id", user.ID)
	return nil
}
