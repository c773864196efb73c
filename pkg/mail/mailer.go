// Package mail delivers transactional email over SMTP and records every
// attempt in the delivery log, successful or not.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

// Mailer sends the one-time reset code to a recipient.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

const resetSubject = "Password Reset OTP"

var otpTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Reset your {{.AppName}} password</h2>
  <p>Your OTP is:</p>
  <h1 style="color: #4CAF50;">{{.Code}}</h1>
  <p>This code expires in 5 minutes.</p>
</div>`))

// SMTPMailer implements Mailer using net/smtp.
type SMTPMailer struct {
	cfg    Config
	auth   smtp.Auth
	logs   repository.EmailLogRepository
	logger *zap.Logger
}

// NewSMTPMailer creates an SMTP mailer. logs may be nil to skip delivery
// logging (tests); logger may be nil.
func NewSMTPMailer(cfg Config, logs repository.EmailLogRepository, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		cfg:    cfg,
		auth:   auth,
		logs:   logs,
		logger: logger,
	}
}

// SendOTP renders and sends the reset-code email. The attempt is recorded
// in the delivery log before the outcome is propagated.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, struct {
		AppName string
		Code    string
	}{AppName: m.cfg.AppName, Code: code}); err != nil {
		return fmt.Errorf("render otp template: %w", err)
	}

	sendErr := m.send(to, resetSubject, body.String())
	m.record(ctx, to, resetSubject, body.String(), sendErr)
	return sendErr
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, m.auth, m.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) record(ctx context.Context, to, subject, body string, sendErr error) {
	if m.logs == nil {
		return
	}

	entry := &domain.EmailLog{
		To:      to,
		From:    m.cfg.From,
		Subject: subject,
		Body:    body,
		Kind:    domain.EmailKindReset,
		Status:  domain.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = domain.EmailStatusFailed
		entry.Error = sendErr.Error()
	}

	if err := m.logs.Record(ctx, entry); err != nil {
		m.logger.Error("failed to record email delivery", zap.String("to", to), zap.Error(err))
	}
}
