package email

import (
	"context"
	"fmt"

	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/platform/config"
	"gopkg.in/gomail.v2"
)

// smtpMailer sends transactional mail over SMTP with implicit TLS.
type smtpMailer struct {
	cfg *config.Config
}

// NewSMTPMailer creates the SMTP-backed mailer.
func NewSMTPMailer(cfg *config.Config) portssvc.MailerSvc {
	return &smtpMailer{cfg: cfg}
}

var _ portssvc.MailerSvc = (*smtpMailer)(nil)

func (m *smtpMailer) SendVerificationEmail(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.FrontendBaseURL, token)
	body := fmt.Sprintf(`
		<h2>Welcome!</h2>
		<p>Please confirm your email address to activate your account.</p>
		<p><a href="%s">Verify my email</a></p>
		<p>This link expires in 24 hours. If you did not create an account, you can ignore this message.</p>
	`, link)
	return m.send(to, "Verify your email address", body)
}

func (m *smtpMailer) SendPasswordResetEmail(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendBaseURL, token)
	body := fmt.Sprintf(`
		<h2>Password reset</h2>
		<p>We received a request to reset your password.</p>
		<p><a href="%s">Choose a new password</a></p>
		<p>This link expires in 1 hour. If you did not request a reset, you can ignore this message.</p>
	`, link)
	return m.send(to, "Reset your password", body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.EmailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.EmailHost, m.cfg.EmailPort, m.cfg.EmailUser, m.cfg.EmailPass)
	// Port 465 speaks TLS from the first byte, not STARTTLS.
	dialer.SSL = m.cfg.EmailPort == 465

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
