package services

import (
	"context"
	"fmt"
	"time"

	"consultbr_backend/internal/email"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService interface {
	SendMessage(ctx context.Context, db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*models.Message, error)
	// GetConversations - сводки переписок, последние сверху
	GetConversations(ctx context.Context, db *gorm.DB, userID string) ([]dto.Conversation, error)
	// GetHistory - переписка с собеседником, старые сверху
	GetHistory(ctx context.Context, db *gorm.DB, userID, partnerID string, projectID *string) ([]models.Message, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, id string) error
	GetThread(ctx context.Context, db *gorm.DB, userID, id string) (*dto.MessageThread, error)
}

type messageService struct {
	messageRepo   repositories.MessageRepository
	userRepo      repositories.UserRepository
	projectRepo   repositories.ProjectRepository
	notifications NotificationService
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	notifications NotificationService,
) MessageService {
	return &messageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		projectRepo:   projectRepo,
		notifications: notifications,
	}
}

func (s *messageService) SendMessage(ctx context.Context, db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if req.ReceiverID == senderID {
		return nil, apperrors.ErrCannotMessageSelf
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	sender, err := s.userRepo.FindByID(tx, senderID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if _, err := s.userRepo.FindByID(tx, req.ReceiverID); err != nil {
		return nil, mapRepoError(err)
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(tx, *req.ProjectID); err != nil {
			return nil, mapRepoError(err)
		}
	}
	if req.ParentID != nil {
		parent, err := s.messageRepo.FindByID(tx, *req.ParentID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		if parent.SenderID != senderID && parent.ReceiverID != senderID {
			return nil, apperrors.NewForbiddenError("You can only reply within your own conversations")
		}
	}

	message := req.ToModel(senderID)
	if err := s.messageRepo.Create(tx, message); err != nil {
		return nil, mapRepoError(err)
	}

	notice := Notice{
		UserID:        message.ReceiverID,
		Type:          models.NotificationTypeMessage,
		Title:         "Nova mensagem",
		Message:       fmt.Sprintf("%s enviou uma mensagem", sender.DisplayName()),
		Data:          map[string]interface{}{"messageId": message.ID, "senderId": senderID, "projectId": message.ProjectID},
		EmailTemplate: email.TemplateMessageReceived,
		EmailSubject:  "Nova mensagem de " + sender.DisplayName(),
		EmailData: email.TemplateData{
			"SenderName": sender.DisplayName(),
			"Preview":    preview(message.Content, 200),
			"Link":       "/messages/" + senderID,
		},
	}
	if err := s.notifications.Record(ctx, tx, notice); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.MessagesSent.Inc()
	logger.CtxDebug(ctx, "message sent", "message_id", message.ID, "receiver_id", message.ReceiverID)
	s.notifications.Deliver(ctx, db, notice)
	return message, nil
}

func (s *messageService) GetConversations(ctx context.Context, db *gorm.DB, userID string) ([]dto.Conversation, error) {
	messages, err := s.messageRepo.FindForUser(db.WithContext(ctx), userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return GroupConversations(userID, messages), nil
}

func (s *messageService) GetHistory(ctx context.Context, db *gorm.DB, userID, partnerID string, projectID *string) ([]models.Message, error) {
	if projectID != nil {
		if _, err := uuid.Parse(*projectID); err != nil {
			return nil, apperrors.ValidationError(map[string]string{"projectId": "must be a valid uuid"})
		}
	}
	messages, err := s.messageRepo.FindBetweenUsers(db.WithContext(ctx), userID, partnerID, projectID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return messages, nil
}

func (s *messageService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, id string) error {
	db = db.WithContext(ctx)

	message, err := s.messageRepo.FindByID(db, id)
	if err != nil {
		return mapRepoError(err)
	}
	if message.ReceiverID != userID {
		return apperrors.ErrNotMessageReceiver
	}
	if message.IsRead {
		return nil
	}
	return mapRepoError(s.messageRepo.MarkAsRead(db, id, time.Now()))
}

func (s *messageService) GetThread(ctx context.Context, db *gorm.DB, userID, id string) (*dto.MessageThread, error) {
	db = db.WithContext(ctx)

	message, err := s.messageRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if message.SenderID != userID && message.ReceiverID != userID {
		return nil, apperrors.NewForbiddenError("You are not a party of this conversation")
	}

	replies, err := s.messageRepo.FindReplies(db, message.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &dto.MessageThread{Message: *message, Replies: replies}, nil
}

// GroupConversations сворачивает сообщения (от новых к старым) в сводки по
// ключу собеседник + проект. Порядок сводок - порядок первого появления ключа,
// то есть по последнему сообщению.
func GroupConversations(userID string, messages []models.Message) []dto.Conversation {
	index := make(map[string]int)
	conversations := make([]dto.Conversation, 0)

	for _, m := range messages {
		partner := m.PartnerOf(userID)
		key := partner + "-general"
		if m.ProjectID != nil {
			key = partner + "-" + *m.ProjectID
		}

		i, ok := index[key]
		if !ok {
			i = len(conversations)
			index[key] = i
			conversations = append(conversations, dto.Conversation{
				PartnerID:   partner,
				ProjectID:   m.ProjectID,
				LastMessage: m,
			})
		}
		if m.ReceiverID == userID && !m.IsRead {
			conversations[i].UnreadCount++
		}
	}
	return conversations
}

func preview(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
