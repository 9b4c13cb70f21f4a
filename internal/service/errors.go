package service

import "errors"

// Closed error set, translated to status codes exactly once at the
// HTTP boundary.
var (
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidCredentials deliberately covers unknown email, wrong
	// password and the revoked-session lockout, so callers cannot tell
	// which one tripped.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotVerified = errors.New("account not verified")

	ErrUnknownEmail      = errors.New("no user found with that email")
	ErrVerificationToken = errors.New("verification failed")

	ErrInvalidRefresh  = errors.New("invalid refresh token")
	ErrRefreshDisabled = errors.New("refresh is not available in stateless mode")

	ErrMailDispatch = errors.New("could not queue verification email")
)
