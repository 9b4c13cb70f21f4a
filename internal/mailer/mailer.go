package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/mykafka"
)

type VerificationEmail struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	VerificationToken string `json:"verificationToken"`
	Origin            string `json:"origin"`
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, m VerificationEmail) error
}

// VerifyLink is the url the mail points the user at; the front end reads
// token and email back out of the query string and posts them to
// /verify-email.
func VerifyLink(m VerificationEmail) string {
	return fmt.Sprintf("%s/user/verify-email?token=%s&email=%s",
		m.Origin, url.QueryEscape(m.VerificationToken), url.QueryEscape(m.Email))
}

// KafkaMailer queues the mail as a job for the mail worker instead of
// talking SMTP in-request. The queue doubles as the retry path when
// delivery fails downstream.
type KafkaMailer struct {
	Producer *mykafka.Producer
	Topic    string
}

type emailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (k *KafkaMailer) SendVerificationEmail(ctx context.Context, m VerificationEmail) error {
	link := VerifyLink(m)
	job := emailJob{
		To:      m.Email,
		Subject: "Email Confirmation",
		HTML: fmt.Sprintf(`<h4>Hello, %s</h4><p>Please confirm your email by clicking on the following link: <a href="%s">Verify Email</a></p>`,
			m.Name, link),
	}

	return k.Producer.PublishEvent(ctx, k.Topic, m.Email, job)
}

// LogMailer is the dev/test stand-in: it only logs the mail.
type LogMailer struct{}

func (LogMailer) SendVerificationEmail(ctx context.Context, m VerificationEmail) error {
	logging.FromContext(ctx).Info("verification_email",
		"to", m.Email,
		"link", VerifyLink(m),
	)
	return nil
}
