package dto

import (
	"consultbr_backend/internal/models"

	"github.com/lib/pq"
)

type SendMessageRequest struct {
	ReceiverID  string   `json:"receiverId" validate:"required,max=255"`
	ProjectID   *string  `json:"projectId" validate:"omitempty,uuid"`
	Content     string   `json:"content" validate:"required,min=1,max=5000"`
	Attachments []string `json:"attachments" validate:"omitempty,max=10,dive,max=1024"`
	ParentID    *string  `json:"parentId" validate:"omitempty,uuid"`
}

func (r *SendMessageRequest) ToModel(senderID string) *models.Message {
	return &models.Message{
		SenderID:    senderID,
		ReceiverID:  r.ReceiverID,
		ProjectID:   r.ProjectID,
		Content:     r.Content,
		Attachments: pq.StringArray(r.Attachments),
		ParentID:    r.ParentID,
	}
}

// Conversation - сводка переписки с одним собеседником в рамках проекта (или общей)
type Conversation struct {
	PartnerID   string         `json:"partnerId"`
	ProjectID   *string        `json:"projectId"`
	LastMessage models.Message `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}

type MessageThread struct {
	Message models.Message   `json:"message"`
	Replies []models.Message `json:"replies"`
}
