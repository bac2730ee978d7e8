package dto

import "consultbr_backend/internal/models"

type CreateTransactionRequest struct {
	ProjectID   string  `json:"projectId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateTransactionStatusRequest struct {
	Status     models.TransactionStatus `json:"status" validate:"required,is-transaction-status"`
	ProviderID *string                  `json:"providerId" validate:"omitempty,max=255"`
}
