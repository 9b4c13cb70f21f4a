package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/auth_service/internal/middleware/auth"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	AdminHandler *AdminHTTP
	AuthMW       *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/verify-email", d.AuthHandler.VerifyEmail)
	v1.POST("/refresh", d.AuthHandler.Refresh)

	private := v1.Group("", d.AuthMW.RequireAuth)
	private.POST("/logout", d.AuthHandler.Logout)
	private.GET("/me", d.AuthHandler.Me)

	admin := v1.Group("/admin", d.AuthMW.RequireAdmin)
	admin.POST("/sessions/:userID/revoke", d.AdminHandler.RevokeSession)
	admin.DELETE("/sessions/:userID", d.AdminHandler.DeleteSession)
	admin.GET("/audit/search", d.AdminHandler.SearchAudit)
}
