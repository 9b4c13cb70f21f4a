package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/service"
)

// httpError is the single place service errors become status codes.
// Credential failures share one message on purpose, so the response
// never says whether the email exists.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide all required fields")
	case errors.Is(err, repo.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
	case errors.Is(err, service.ErrUnknownEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "No user found with that email")
	case errors.Is(err, service.ErrVerificationToken):
		return echo.NewHTTPError(http.StatusBadRequest, "Verification failed")
	case errors.Is(err, service.ErrRefreshDisabled):
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh is not available")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Credentials")
	case errors.Is(err, service.ErrNotVerified):
		return echo.NewHTTPError(http.StatusUnauthorized, "Please verify your account")
	case errors.Is(err, service.ErrInvalidRefresh):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, service.ErrMailDispatch):
		return echo.NewHTTPError(http.StatusBadGateway, "Could not send verification email")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
