package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

const (
	EventRegistered    = "user_registered"
	EventLoggedIn      = "user_logged_in"
	EventLoggedOut     = "user_logged_out"
	EventEmailVerified = "email_verified"
	EventSessionRevoke = "session_revoked"
)

type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	At        time.Time `json:"at"`
}

// Writer indexes auth events so admins can search the trail later.
// A nil Writer (or one without a client) drops events silently, which
// keeps the service usable without Elasticsearch.
type Writer struct {
	ES    *elasticsearch.Client
	Index string
}

func (w *Writer) Write(ctx context.Context, e Event) error {
	if w == nil || w.ES == nil {
		return nil
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(e); err != nil {
		return fmt.Errorf("audit: encode: %w", err)
	}

	res, err := w.ES.Index(
		w.Index,
		&buf,
		w.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("audit: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("audit: index: %s", res.Status())
	}
	return nil
}
