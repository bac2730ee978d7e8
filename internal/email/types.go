package email

// Email - письмо к отправке
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем
type TemplateData map[string]interface{}

// Имена встроенных шаблонов
const (
	TemplateProposalReceived = "proposal_received"
	TemplateProposalStatus   = "proposal_status"
	TemplateMessageReceived  = "message_received"
	TemplateProjectStatus    = "project_status"
)
