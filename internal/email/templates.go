package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

var defaultTemplates = map[string]string{
	TemplateProposalReceived: `<p>Olá {{.RecipientName}},</p>
<p>Você recebeu uma nova proposta para o projeto <strong>{{.ProjectTitle}}</strong>.</p>
{{if .Rate}}<p>Valor proposto: R$ {{.Rate}}</p>{{end}}
<p><a href="{{.Link}}">Ver proposta</a></p>`,

	TemplateProposalStatus: `<p>Olá {{.RecipientName}},</p>
<p>Sua proposta para o projeto <strong>{{.ProjectTitle}}</strong> mudou para <strong>{{.Status}}</strong>.</p>
<p><a href="{{.Link}}">Ver proposta</a></p>`,

	TemplateMessageReceived: `<p>Olá {{.RecipientName}},</p>
<p>{{.SenderName}} enviou uma nova mensagem:</p>
<blockquote>{{.Preview}}</blockquote>
<p><a href="{{.Link}}">Responder</a></p>`,

	TemplateProjectStatus: `<p>Olá {{.RecipientName}},</p>
<p>O projeto <strong>{{.ProjectTitle}}</strong> agora está <strong>{{.Status}}</strong>.</p>`,
}

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер и загружает встроенные шаблоны
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
