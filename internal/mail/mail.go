// Package mail relays contact-form messages through an external
// transactional send API (Gmail-style: a base64url-encoded RFC 2822
// message POSTed as {"raw": ...} with a bearer credential obtained out
// of band).
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var (
	// ErrRelayAuth means the send API rejected our credential. The relay
	// is unusable until reconfigured; retrying will not help.
	ErrRelayAuth = errors.New("mail relay rejected credentials")

	// ErrBadRecipient means the recipient address failed validation and
	// nothing was submitted.
	ErrBadRecipient = errors.New("invalid recipient address")
)

// subjectPrefix matches the fixed subject template of the contact form.
const subjectPrefix = "A Message from the Blog "

// Sender relays a contact message to one recipient
type Sender interface {
	SendContact(ctx context.Context, to, body string) (string, error)
}

// Relay is the concrete Sender backed by the configured send API
type Relay struct {
	client   *http.Client
	endpoint string
	from     string
	log      zerolog.Logger
}

// NewRelay creates a Relay using a static bearer token. Token refresh is
// out of scope; the credential is provisioned out of band.
func NewRelay(cfg *config.MailConfig, log zerolog.Logger) *Relay {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	client := oauth2.NewClient(context.Background(), source)
	client.Timeout = cfg.Timeout

	return &Relay{
		client:   client,
		endpoint: cfg.Endpoint,
		from:     cfg.From,
		log:      log.With().Str("component", "mail").Logger(),
	}
}

// SendContact builds the transactional message and submits it. It returns
// the message id the API assigned. No retry is attempted here; transient
// failures are the caller's to handle.
func (r *Relay) SendContact(ctx context.Context, to, body string) (string, error) {
	if !validation.IsEmail(to) {
		return "", ErrBadRecipient
	}

	raw := base64.URLEncoding.EncodeToString(buildMessage(r.from, to, body))
	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return "", fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrRelayAuth
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode send response: %w", err)
	}

	r.log.Info().Str("message_id", result.ID).Str("to", to).Msg("Contact message relayed")
	return result.ID, nil
}

// buildMessage assembles a plain-text RFC 2822 message for the envelope
// {from, to, subject, body}.
func buildMessage(from, to, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %sTo: %s From: %s\r\n", subjectPrefix, to, from)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
