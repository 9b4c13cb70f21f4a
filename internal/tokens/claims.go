package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/auth_service/internal/models"
)

type AccessClaims struct {
	User models.TokenUser `json:"user"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	User models.TokenUser `json:"user"`
	// RefreshSecret is the raw session secret, matched against the
	// stored session row on renewal.
	RefreshSecret string `json:"refreshSecret"`
	jwt.RegisteredClaims
}

func NewAccessToken(user models.TokenUser, secret []byte, exp time.Time) (string, error) {
	claims := AccessClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func NewRefreshToken(user models.TokenUser, refreshSecret string, secret []byte, exp time.Time) (string, error) {
	claims := RefreshClaims{
		User:          user,
		RefreshSecret: refreshSecret,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
