package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyLink(t *testing.T) {
	m := VerificationEmail{
		Email:             "alice+test@example.com",
		Name:              "alice",
		VerificationToken: "abc123",
		Origin:            "http://localhost:3000",
	}

	link := VerifyLink(m)
	assert.Equal(t, "http://localhost:3000/user/verify-email?token=abc123&email=alice%2Btest%40example.com", link)
}

func TestLogMailer(t *testing.T) {
	err := LogMailer{}.SendVerificationEmail(context.Background(), VerificationEmail{
		Email:             "alice@example.com",
		Name:              "alice",
		VerificationToken: "abc123",
		Origin:            "http://localhost:3000",
	})
	require.NoError(t, err)
}
