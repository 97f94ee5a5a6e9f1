// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/models"
)

// smtpSender mails every notification to a fixed recipient list.
type smtpSender struct {
	cfg  config.SMTP
	auth smtp.Auth
	now  func() time.Time
}

// NewSMTPSender builds an SMTP sender. PLAIN auth is used when both
// username and password are configured; STARTTLS is used whenever the
// relay offers it.
func NewSMTPSender(cfg config.SMTP) Sender {
	s := &smtpSender{cfg: cfg, now: time.Now}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s
}

func (s *smtpSender) Send(ctx context.Context, event models.ClaimEvent) error {
	if err := s.send(ctx, event); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	return nil
}

func (s *smtpSender) send(ctx context.Context, event models.ClaimEvent) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if s.auth != nil {
		if err = client.Auth(s.auth); err != nil {
			return err
		}
	}

	recipients := s.recipients()
	if err = client.Mail(s.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err = client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(s.buildMessage(event, recipients)); err != nil {
		_ = w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// recipients splits the comma separated To setting.
func (s *smtpSender) recipients() []string {
	var out []string
	for _, addr := range strings.Split(s.cfg.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (s *smtpSender) buildMessage(event models.ClaimEvent, recipients []string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", event.Subject())
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(event.Text())
	b.WriteString("\r\n")
	return b.Bytes()
}
