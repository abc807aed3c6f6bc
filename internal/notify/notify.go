// Package notify delivers owner notifications for new orders and
// inquiries. The pipeline treats delivery as best-effort: a failed send is
// logged and reported per-phase, never escalated.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends one rich-text notification to the shop owner.
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// SMTP delivers mail through a configured SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTP creates an SMTP mailer addressed to the owner.
func NewSMTP(host string, port int, user, password, from, to string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

// Send dials the relay and delivers the message.
func (s *SMTP) Send(ctx context.Context, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// Log is the fallback mailer used when no SMTP relay is configured: it
// records the notification in the service log so nothing is lost silently.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a log-backed mailer.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// Send logs the notification instead of delivering it.
func (l *Log) Send(_ context.Context, subject, htmlBody string) error {
	l.logger.Info("notification (no SMTP relay configured)",
		zap.String("subject", subject),
		zap.Int("body_bytes", len(htmlBody)))
	return nil
}

// Memory collects sent messages for tests.
type Memory struct {
	mu       sync.Mutex
	Messages []Message
	Fail     error // when set, Send returns this error
}

// Message is one captured notification.
type Message struct {
	Subject string
	Body    string
}

// Send records the message, or fails when Fail is set.
func (m *Memory) Send(_ context.Context, subject, htmlBody string) error {
	if m.Fail != nil {
		return m.Fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, Message{Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of the captured messages.
func (m *Memory) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}
