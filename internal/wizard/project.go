package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
)

// NewProjectCreation - шаги: основное, бюджет и сроки, проверка.
// На последнем шаге выбирается статус DRAFT или PUBLISHED.
func NewProjectCreation(submit SubmitFunc[dto.CreateProjectRequest]) *Wizard[dto.CreateProjectRequest] {
	type req = dto.CreateProjectRequest

	return New([]Step[req]{
		{
			Name: "basics",
			Fields: []Field[req]{
				{Name: "title", Label: "Título do projeto", Set: PlainText(func(r *req) *string { return &r.Title })},
				{Name: "description", Label: "Descrição", Set: PlainText(func(r *req) *string { return &r.Description })},
				{Name: "requirements", Label: "Requisitos específicos", Optional: true, Set: Text(func(r *req) **string { return &r.Requirements })},
				{Name: "deliverables", Label: "Entregáveis (separados por vírgula)", Optional: true, Set: List(func(r *req) *[]string { return &r.Deliverables })},
			},
			Validate: func(r *req) error {
				if n := len([]rune(r.Title)); n < 3 || n > 255 {
					return errors.New("title: must be 3 to 255 characters")
				}
				if len([]rune(r.Description)) < 10 {
					return errors.New("description: must be at least 10 characters")
				}
				return nil
			},
		},
		{
			Name: "budget",
			Fields: []Field[req]{
				{Name: "budget", Label: "Orçamento (R$)", Optional: true, Set: Float(func(r *req) **float64 { return &r.Budget })},
				{Name: "estimatedHours", Label: "Horas estimadas", Optional: true, Set: Int(func(r *req) **int { return &r.EstimatedHours })},
				{Name: "startDate", Label: "Data de início (AAAA-MM-DD)", Optional: true, Set: Date(func(r *req) **time.Time { return &r.StartDate })},
				{Name: "endDate", Label: "Data de entrega (AAAA-MM-DD)", Optional: true, Set: Date(func(r *req) **time.Time { return &r.EndDate })},
			},
			Validate: func(r *req) error {
				if r.Budget != nil && *r.Budget < 0 {
					return errors.New("budget: must not be negative")
				}
				if r.EstimatedHours != nil && *r.EstimatedHours < 1 {
					return errors.New("estimatedHours: must be at least 1")
				}
				if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
					return errors.New("endDate: must not be before startDate")
				}
				return nil
			},
		},
		{
			Name: "review",
			Fields: []Field[req]{
				{Name: "publish", Label: "Publicar agora? (s/n)", Optional: true, Set: setPublish},
			},
			Validate: func(r *req) error {
				if r.Status == "" {
					r.Status = models.ProjectStatusDraft
				}
				if r.Status != models.ProjectStatusDraft && r.Status != models.ProjectStatusPublished {
					return fmt.Errorf("status: must be %s or %s", models.ProjectStatusDraft, models.ProjectStatusPublished)
				}
				return nil
			},
		},
	}, submit)
}

func setPublish(r *dto.CreateProjectRequest, value string) error {
	var publish *bool
	if err := Bool(func(*dto.CreateProjectRequest) **bool { return &publish })(r, value); err != nil {
		return err
	}
	r.Status = models.ProjectStatusDraft
	if publish != nil && *publish {
		r.Status = models.ProjectStatusPublished
	}
	return nil
}

// SummarizeProject - сводка для шага review
func SummarizeProject(r *dto.CreateProjectRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Título: %s\n", r.Title)
	fmt.Fprintf(&b, "Descrição: %s\n", r.Description)
	if r.Requirements != nil {
		fmt.Fprintf(&b, "Requisitos: %s\n", *r.Requirements)
	}
	if len(r.Deliverables) > 0 {
		fmt.Fprintf(&b, "Entregáveis: %s\n", strings.Join(r.Deliverables, ", "))
	}
	if r.Budget != nil {
		fmt.Fprintf(&b, "Orçamento: R$ %.2f\n", *r.Budget)
	}
	if r.EstimatedHours != nil {
		fmt.Fprintf(&b, "Horas estimadas: %d\n", *r.EstimatedHours)
	}
	if r.StartDate != nil {
		fmt.Fprintf(&b, "Início: %s\n", r.StartDate.Format(DateLayout))
	}
	if r.EndDate != nil {
		fmt.Fprintf(&b, "Entrega: %s\n", r.EndDate.Format(DateLayout))
	}
	return b.String()
}
