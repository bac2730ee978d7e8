package dto

import (
	"time"

	"consultbr_backend/internal/models"
)

type CreateProposalRequest struct {
	ProjectID      string     `json:"projectId" validate:"required,uuid"`
	Message        string     `json:"message" validate:"required,min=1,max=5000"`
	ProposedRate   *float64   `json:"proposedRate" validate:"omitempty,gte=0"`
	EstimatedHours *int       `json:"estimatedHours" validate:"omitempty,gte=1"`
	DeliveryDate   *time.Time `json:"deliveryDate"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	// ParentID - предложение, на которое это встречное
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

type UpdateProposalRequest struct {
	Message        *string                `json:"message" validate:"omitempty,min=1,max=5000"`
	ProposedRate   *float64               `json:"proposedRate" validate:"omitempty,gte=0"`
	EstimatedHours *int                   `json:"estimatedHours" validate:"omitempty,gte=1"`
	DeliveryDate   *time.Time             `json:"deliveryDate"`
	Status         *models.ProposalStatus `json:"status" validate:"omitempty,is-proposal-status"`
}

// HasTermChanges - меняются ли условия (может только отправитель)
func (r *UpdateProposalRequest) HasTermChanges() bool {
	return r.Message != nil || r.ProposedRate != nil || r.EstimatedHours != nil || r.DeliveryDate != nil
}

func (r *UpdateProposalRequest) ToUpdates() map[string]interface{} {
	u := make(map[string]interface{})
	setString(u, "message", r.Message)
	if r.ProposedRate != nil {
		u["proposed_rate"] = *r.ProposedRate
	}
	if r.EstimatedHours != nil {
		u["estimated_hours"] = *r.EstimatedHours
	}
	if r.DeliveryDate != nil {
		u["delivery_date"] = *r.DeliveryDate
	}
	return u
}

type ProposalBoxRequest struct {
	Type string `uri:"type" validate:"required,is-proposal-box"`
}
