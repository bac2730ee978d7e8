package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет готовое письмо
	Send(email *Email) error

	// SendTemplate рендерит шаблон и отправляет его
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Enabled - false, если SMTP не настроен
	Enabled() bool
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
