// Package mail delivers outbound messages over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends mail through a configured relay. Plain and TLS
// connections are supported; authentication is used when credentials are set.
type SMTPMailer struct {
	addr    string
	auth    smtp.Auth
	useTLS  bool
	timeout time.Duration
	from    string
	logger  *logger.Logger
}

// Config holds relay parameters.
type Config struct {
	Addr     string
	From     string
	User     string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

func NewSMTPMailer(cfg Config, logger *logger.Logger) *SMTPMailer {
	var auth smtp.Auth
	if cfg.User != "" || cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, host(cfg.Addr))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{
		addr:    cfg.Addr,
		auth:    auth,
		useTLS:  cfg.UseTLS,
		timeout: cfg.Timeout,
		from:    cfg.From,
		logger:  logger,
	}
}

// Send delivers a single HTML message. The configured timeout bounds the
// whole exchange in addition to the caller's context.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=utf-8\r\n" +
			"\r\n" + htmlBody + "\r\n")

	start := time.Now()

	var err error
	if m.useTLS {
		err = m.sendTLS(ctx, to, msg)
	} else {
		err = smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg)
	}
	if err != nil {
		m.logger.Error("Mailer: delivery failed",
			"smtp_addr", m.addr,
			"to", to,
			"error", err.Error())
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Info("Mailer: message sent",
		"smtp_addr", m.addr,
		"to", to,
		"subject", subject,
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

func (m *SMTPMailer) sendTLS(ctx context.Context, to string, msg []byte) error {
	dialer := tls.Dialer{
		NetDialer: &net.Dialer{Timeout: m.timeout},
		Config:    &tls.Config{ServerName: host(m.addr)},
	}

	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("failed to dial relay: %w", err)
	}

	c, err := smtp.NewClient(conn, host(m.addr))
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer c.Close()

	if m.auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(m.auth); err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}
		}
	}
	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("failed MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("failed RCPT TO: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("failed DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}
	return c.Quit()
}

func host(addr string) string {
	if i := strings.Index(addr, ":"); i >= 0 {
		return addr[:i]
	}
	return addr
}
