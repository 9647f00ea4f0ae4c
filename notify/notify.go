// Package notify sends alert mails.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/cryptofolio/config"
)

// Timeout bounds the whole SMTP conversation.
const Timeout = 20 * time.Second

// ErrConfig is returned when the SMTP configuration is incomplete or invalid.
var ErrConfig = errors.New("invalid email config")

// Mailer sends plain text mails through an SMTP server.
type Mailer struct {
	cfg config.SMTPConfig
	// TLS is used for SSL and STARTTLS connections. nil means the system defaults.
	TLS *tls.Config
}

func New(cfg config.SMTPConfig) *Mailer { return &Mailer{cfg: cfg} }

// Check returns an error if the configuration cannot be used to send mails.
func (m *Mailer) Check() error {
	var missing []string
	for _, kv := range []struct{ key, value string }{
		{"SMTP_HOST", m.cfg.Host},
		{"SMTP_PORT", m.cfg.Port},
		{"SMTP_USER", m.cfg.User},
		{"SMTP_PASS", m.cfg.Password},
		{"ALERT_TO_EMAIL", m.cfg.To},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, ", "))
	}
	if port, err := strconv.Atoi(m.cfg.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: invalid SMTP_PORT: %s", ErrConfig, m.cfg.Port)
	}
	return nil
}

// Recipient returns the alert destination.
func (m *Mailer) Recipient() string { return m.cfg.To }

// Send sends a mail to the alert recipient.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if err := m.Check(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	conn, err := m.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	defer c.Close()

	if !m.cfg.SSL && m.cfg.StartTLS {
		if err := c.StartTLS(m.tlsConfig()); err != nil {
			return fmt.Errorf("SMTP send failed: starttls: %w", err)
		}
	}
	if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("SMTP send failed: auth: %w", err)
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	if err := c.Rcpt(m.cfg.To); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	if _, err := w.Write(Message(from, m.cfg.To, subject, body)); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	return c.Quit()
}

func (m *Mailer) dial(ctx context.Context, addr string) (net.Conn, error) {
	if m.cfg.SSL {
		d := &tls.Dialer{Config: m.tlsConfig()}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

func (m *Mailer) tlsConfig() *tls.Config {
	if m.TLS != nil {
		return m.TLS
	}
	return &tls.Config{ServerName: m.cfg.Host}
}

// Message returns a plain text mail, headers included.
func Message(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}
