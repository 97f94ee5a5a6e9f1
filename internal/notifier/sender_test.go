// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/models"
)

var breadEvent = models.ClaimEvent{
	ClaimID:       7,
	ItemID:        3,
	ItemName:      "Bread",
	VolunteerName: "alice",
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Notifier
		wantType Sender
		wantErr  error
	}{
		{name: "empty is log", cfg: config.Notifier{}, wantType: &logSender{}},
		{name: "log", cfg: config.Notifier{Provider: config.ProviderLog}, wantType: &logSender{}},
		{name: "smtp", cfg: config.Notifier{Provider: config.ProviderSMTP}, wantType: &smtpSender{}},
		{name: "webhook", cfg: config.Notifier{Provider: config.ProviderWebhook, WebhookURL: "http://x"}, wantType: &webhookSender{}},
		{name: "unknown", cfg: config.Notifier{Provider: "pigeon"}, wantErr: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSender(tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, s)
		})
	}
}

func TestLogSender_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logger.NewLogger("notifier", logger.WithOutput(&buf)))

	require.NoError(t, s.Send(context.Background(), breadEvent))
	assert.Contains(t, buf.String(), "Volunteer alice signed up to rescue Bread!")
	assert.Contains(t, buf.String(), `"claim_id":7`)
}

func TestWebhookSender_PostsEvent(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, time.Second)
	require.NoError(t, s.Send(context.Background(), breadEvent))

	assert.Equal(t, float64(7), got["claim_id"])
	assert.Equal(t, "Bread", got["item_name"])
	assert.Equal(t, "Food Rescue Alert", got["subject"])
	assert.Equal(t, "Volunteer alice signed up to rescue Bread!", got["text"])
}

func TestWebhookSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookSender(srv.URL, time.Second).Send(context.Background(), breadEvent)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestWebhookSender_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewWebhookSender(url, time.Second).Send(context.Background(), breadEvent)
	assert.ErrorIs(t, err, ErrSendingWebhook)
}

// fakeSMTPServer accepts a single session without STARTTLS or AUTH and
// records the envelope and message body.
type fakeSMTPServer struct {
	addr     string
	from     string
	rcpts    []string
	data     string
	finished chan struct{}
}

func startFakeSMTPServer(t *testing.T) *fakeSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := &fakeSMTPServer{addr: ln.Addr().String(), finished: make(chan struct{})}
	go func() {
		defer close(srv.finished)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		srv.serve(textproto.NewConn(conn))
	}()
	return srv
}

func (s *fakeSMTPServer) serve(c *textproto.Conn) {
	_ = c.PrintfLine("220 fake ESMTP")
	for {
		line, err := c.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			_ = c.PrintfLine("250 fake")
		case strings.HasPrefix(cmd, "MAIL FROM:"):
			s.from = strings.Trim(line[len("MAIL FROM:"):], "<> ")
			_ = c.PrintfLine("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO:"):
			s.rcpts = append(s.rcpts, strings.Trim(line[len("RCPT TO:"):], "<> "))
			_ = c.PrintfLine("250 OK")
		case cmd == "DATA":
			_ = c.PrintfLine("354 go ahead")
			lines, err := c.ReadDotLines()
			if err != nil {
				return
			}
			s.data = strings.Join(lines, "\n")
			_ = c.PrintfLine("250 queued")
		case cmd == "QUIT":
			_ = c.PrintfLine("221 bye")
			return
		default:
			_ = c.PrintfLine("502 not implemented")
		}
	}
}

func TestSMTPSender_SendsMail(t *testing.T) {
	srv := startFakeSMTPServer(t)
	host, portStr, err := net.SplitHostPort(srv.addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	s := NewSMTPSender(config.SMTP{
		Host: host,
		Port: port,
		From: "noreply@foodrescue.local",
		To:   "ops@foodrescue.local, admin@foodrescue.local",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Send(ctx, breadEvent))

	<-srv.finished
	assert.Equal(t, "noreply@foodrescue.local", srv.from)
	assert.Equal(t, []string{"ops@foodrescue.local", "admin@foodrescue.local"}, srv.rcpts)
	assert.Contains(t, srv.data, "Subject: Food Rescue Alert")
	assert.Contains(t, srv.data, "Volunteer alice signed up to rescue Bread!")
}

func TestSMTPSender_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	s := NewSMTPSender(config.SMTP{Host: "127.0.0.1", Port: addr.Port, From: "a@b", To: "c@d"})
	err = s.Send(context.Background(), breadEvent)
	assert.ErrorIs(t, err, ErrSendingMail)
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(config.SMTP{From: "noreply@x"}).(*smtpSender)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

	msg := string(s.buildMessage(breadEvent, []string{"a@x", "b@x"}))

	r := textproto.NewReader(bufio.NewReader(strings.NewReader(msg)))
	header, err := r.ReadMIMEHeader()
	require.NoError(t, err)
	assert.Equal(t, "noreply@x", header.Get("From"))
	assert.Equal(t, "a@x, b@x", header.Get("To"))
	assert.Equal(t, "Food Rescue Alert", header.Get("Subject"))
	assert.Equal(t, "Sat, 01 Mar 2025 09:00:00 +0000", header.Get("Date"))
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nVolunteer alice signed up to rescue Bread!\r\n"))
}
