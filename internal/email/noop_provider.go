package email

import (
	"consultbr_backend/internal/config"
	"consultbr_backend/internal/logger"
)

// NoopProvider используется, когда SMTP не настроен: письма только логируются
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider { return &NoopProvider{} }

func (p *NoopProvider) Enabled() bool { return false }

func (p *NoopProvider) Send(email *Email) error {
	logger.Debug("email skipped, smtp not configured", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Debug("email skipped, smtp not configured", "to", to, "template", templateName)
	return nil
}

// NewProvider выбирает реализацию по конфигу
func NewProvider(cfg *config.Config) (Provider, error) {
	if !cfg.EmailEnabled() {
		return NewNoopProvider(), nil
	}
	renderer, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}
	return NewSMTPProvider(cfg, renderer), nil
}
