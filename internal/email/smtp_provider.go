package email

import (
	"errors"
	"fmt"

	"consultbr_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Dialer - часть gomail.Dialer, которую мы используем
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPProvider отправляет письма через gomail
type SMTPProvider struct {
	dialer    Dialer
	fromEmail string
	fromName  string
	renderer  TemplateRenderer
}

// NewSMTPProvider создает провайдер из секции email конфига
func NewSMTPProvider(cfg *config.Config, renderer TemplateRenderer) *SMTPProvider {
	e := cfg.Email
	return &SMTPProvider{
		dialer:    gomail.NewDialer(e.SMTPHost, e.SMTPPort, e.SMTPUsername, e.SMTPPassword),
		fromEmail: e.FromEmail,
		fromName:  e.FromName,
		renderer:  renderer,
	}
}

// NewSMTPProviderWithDialer нужен для тестов
func NewSMTPProviderWithDialer(d Dialer, fromEmail, fromName string, renderer TemplateRenderer) *SMTPProvider {
	return &SMTPProvider{dialer: d, fromEmail: fromEmail, fromName: fromName, renderer: renderer}
}

func (p *SMTPProvider) Enabled() bool { return true }

func (p *SMTPProvider) Send(email *Email) error {
	if email == nil || len(email.To) == 0 {
		return errors.New("email has no recipients")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}
