package dto

import (
	"time"

	"consultbr_backend/internal/models"

	"github.com/lib/pq"
)

type CreateProjectRequest struct {
	Title          string               `json:"title" validate:"required,min=3,max=255"`
	Description    string               `json:"description" validate:"required,min=10,max=10000"`
	Requirements   *string              `json:"requirements" validate:"omitempty,max=10000"`
	Deliverables   []string             `json:"deliverables" validate:"omitempty,max=50,dive,max=500"`
	Budget         *float64             `json:"budget" validate:"omitempty,gte=0"`
	EstimatedHours *int                 `json:"estimatedHours" validate:"omitempty,gte=1"`
	Status         models.ProjectStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	StartDate      *time.Time           `json:"startDate"`
	EndDate        *time.Time           `json:"endDate"`
	Attachments    []string             `json:"attachments" validate:"omitempty,max=10,dive,max=1024"`
}

func (r *CreateProjectRequest) ToModel(entrepreneurID string) *models.Project {
	status := r.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}
	return &models.Project{
		EntrepreneurID: entrepreneurID,
		Title:          r.Title,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Deliverables:   pq.StringArray(r.Deliverables),
		Budget:         r.Budget,
		EstimatedHours: r.EstimatedHours,
		Status:         status,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Attachments:    pq.StringArray(r.Attachments),
	}
}

type UpdateProjectRequest struct {
	Title          *string               `json:"title" validate:"omitempty,min=3,max=255"`
	Description    *string               `json:"description" validate:"omitempty,min=10,max=10000"`
	Requirements   *string               `json:"requirements" validate:"omitempty,max=10000"`
	Deliverables   []string              `json:"deliverables" validate:"omitempty,max=50,dive,max=500"`
	Budget         *float64              `json:"budget" validate:"omitempty,gte=0"`
	EstimatedHours *int                  `json:"estimatedHours" validate:"omitempty,gte=1"`
	Status         *models.ProjectStatus `json:"status" validate:"omitempty,is-project-status"`
	StartDate      *time.Time            `json:"startDate"`
	EndDate        *time.Time            `json:"endDate"`
	Attachments    []string              `json:"attachments" validate:"omitempty,max=10,dive,max=1024"`
}

// ToUpdates не включает статус: переходы проверяет сервис
func (r *UpdateProjectRequest) ToUpdates() map[string]interface{} {
	u := make(map[string]interface{})
	setString(u, "title", r.Title)
	setString(u, "description", r.Description)
	setString(u, "requirements", r.Requirements)
	if r.Deliverables != nil {
		u["deliverables"] = pq.StringArray(r.Deliverables)
	}
	if r.Budget != nil {
		u["budget"] = *r.Budget
	}
	if r.EstimatedHours != nil {
		u["estimated_hours"] = *r.EstimatedHours
	}
	if r.StartDate != nil {
		u["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		u["end_date"] = *r.EndDate
	}
	if r.Attachments != nil {
		u["attachments"] = pq.StringArray(r.Attachments)
	}
	return u
}

type ListRequest struct {
	Limit  int `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int `form:"offset" validate:"omitempty,gte=0"`
}
