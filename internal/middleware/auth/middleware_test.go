package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/mailer"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

func newTestService(t *testing.T) *service.AuthService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &service.AuthService{
		Repo:          repo.GormRepo{DB: db},
		Mailer:        mailer.LogMailer{},
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		LogoutPolicy:  config.LogoutPolicyDelete,
		OriginURL:     "http://localhost:3000",
		EventsTopic:   "auth_events",
	}
}

func loginUser(t *testing.T, svc *service.AuthService, email string) *service.LoginResult {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, email, "tester", "Secret123"))
	user, err := svc.Repo.FindUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, email, user.VerificationToken))

	res, err := svc.Login(ctx, email, "Secret123", "1.2.3.4", "test")
	require.NoError(t, err)
	return res
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		user, ok := c.Get("user").(models.TokenUser)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"user": user})
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_ValidAccessToken(t *testing.T) {
	svc := newTestService(t)
	res := loginUser(t, svc, "alice@example.com")
	mw := NewMiddleware(svc)

	rec := doRequest(t, mw.RequireAuth,
		tokens.CreateCookie(tokens.AccessCookieName, res.AccessToken, "/", res.AccessExp),
	)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	svc := newTestService(t)
	mw := NewMiddleware(svc)

	rec := doRequest(t, mw.RequireAuth)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	svc := newTestService(t)
	mw := NewMiddleware(svc)

	rec := doRequest(t, mw.RequireAuth,
		tokens.CreateCookie(tokens.AccessCookieName, "garbage", "/", time.Now().Add(time.Hour)),
	)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_AutoRefreshOnExpiredAccess(t *testing.T) {
	svc := newTestService(t)
	res := loginUser(t, svc, "alice@example.com")
	mw := NewMiddleware(svc)

	expired, err := tokens.NewAccessToken(res.User, svc.AccessSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	rec := doRequest(t, mw.RequireAuth,
		tokens.CreateCookie(tokens.AccessCookieName, expired, "/", time.Now().Add(time.Hour)),
		tokens.CreateCookie(tokens.RefreshCookieName, res.RefreshToken, "/", res.RefreshExp),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var renewed bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == tokens.AccessCookieName && ck.Value != "" && ck.Value != expired {
			renewed = true
		}
	}
	require.True(t, renewed)
}

func TestRequireAuth_ExpiredAccessRevokedSession(t *testing.T) {
	svc := newTestService(t)
	res := loginUser(t, svc, "alice@example.com")
	mw := NewMiddleware(svc)

	require.NoError(t, svc.RevokeSession(context.Background(), res.User.ID))

	expired, err := tokens.NewAccessToken(res.User, svc.AccessSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	rec := doRequest(t, mw.RequireAuth,
		tokens.CreateCookie(tokens.AccessCookieName, expired, "/", time.Now().Add(time.Hour)),
		tokens.CreateCookie(tokens.RefreshCookieName, res.RefreshToken, "/", res.RefreshExp),
	)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService(t)
	admin := loginUser(t, svc, "alice@example.com") // first user is admin
	user := loginUser(t, svc, "bob@example.com")
	mw := NewMiddleware(svc)

	rec := doRequest(t, mw.RequireAdmin,
		tokens.CreateCookie(tokens.AccessCookieName, admin.AccessToken, "/", admin.AccessExp),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mw.RequireAdmin,
		tokens.CreateCookie(tokens.AccessCookieName, user.AccessToken, "/", user.AccessExp),
	)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
