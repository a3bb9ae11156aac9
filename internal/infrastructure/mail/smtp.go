package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/smtp"
	"os"
	"time"

	gomail "github.com/emersion/go-message/mail"

	"BookmarkDigest/internal/domain"
	"BookmarkDigest/internal/ports"
)

// Sender delivers digests over SMTP in a single session per send.
type Sender struct {
	host     string
	port     int
	username string
	password string
}

var _ ports.Mailer = (*Sender)(nil)

// NewSender registers the SMTP endpoint; auth is PLAIN when a username is set.
func NewSender(host string, port int, username, password string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Send builds an RFC 5322 message from the digest and submits it. It returns
// the generated Message-Id.
func (s *Sender) Send(ctx context.Context, digest domain.Digest) (string, error) {
	if s.host == "" {
		return "", fmt.Errorf("smtp sender misconfigured: no host")
	}
	if digest.From == "" || digest.To == "" {
		return "", fmt.Errorf("smtp sender misconfigured: missing from/to address")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := newMessageID(s.host)
	raw, err := buildMessage(digest, messageID)
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, digest.From, []string{digest.To}, raw); err != nil {
		return "", fmt.Errorf("send mail: %w", err)
	}

	return messageID, nil
}

func buildMessage(digest domain.Digest, messageID string) ([]byte, error) {
	var h gomail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*gomail.Address{{Address: digest.From}})
	h.SetAddressList("To", []*gomail.Address{{Address: digest.To}})
	h.SetSubject(digest.Subject)
	h.SetMessageID(messageID)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, digest.Body); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func newMessageID(host string) string {
	return fmt.Sprintf("%d.%d@%s", time.Now().UnixNano(), os.Getpid(), host)
}
