package services

import (
	"context"
	"encoding/json"
	"time"

	"consultbr_backend/internal/email"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notice - уведомление, которое пишется в транзакции и дублируется письмом после коммита
type Notice struct {
	UserID  string
	Type    models.NotificationType
	Title   string
	Message string
	Data    map[string]interface{}

	// EmailTemplate пустой - письмо не отправляется
	EmailTemplate string
	EmailSubject  string
	EmailData     email.TemplateData
}

type NotificationService interface {
	// Record сохраняет уведомление в рамках переданной транзакции
	Record(ctx context.Context, tx *gorm.DB, notice Notice) error
	// Deliver отправляет письма по уже закоммиченным уведомлениям; ошибки только логируются
	Deliver(ctx context.Context, db *gorm.DB, notices ...Notice)

	List(ctx context.Context, db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, id string) error
	MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	mailer           email.Provider
	publicURL        string
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
	publicURL string,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		publicURL:        publicURL,
	}
}

func (s *notificationService) Record(ctx context.Context, tx *gorm.DB, notice Notice) error {
	var data datatypes.JSON
	if len(notice.Data) > 0 {
		raw, err := json.Marshal(notice.Data)
		if err != nil {
			return err
		}
		data = raw
	}

	return s.notificationRepo.Create(tx.WithContext(ctx), &models.Notification{
		UserID:  notice.UserID,
		Type:    notice.Type,
		Title:   notice.Title,
		Message: notice.Message,
		Data:    data,
	})
}

func (s *notificationService) Deliver(ctx context.Context, db *gorm.DB, notices ...Notice) {
	if !s.mailer.Enabled() {
		return
	}

	for _, n := range notices {
		if n.EmailTemplate == "" {
			continue
		}

		user, err := s.userRepo.FindByID(db.WithContext(ctx), n.UserID)
		if err != nil || user.Email == nil || *user.Email == "" {
			logger.CtxWarn(ctx, "notification email skipped: no recipient address", "user_id", n.UserID)
			continue
		}

		data := email.TemplateData{"RecipientName": user.DisplayName()}
		for k, v := range n.EmailData {
			data[k] = v
		}
		if link, ok := data["Link"].(string); ok && len(link) > 0 && link[0] == '/' {
			data["Link"] = s.publicURL + link
		}

		if err := s.mailer.SendTemplate([]string{*user.Email}, n.EmailSubject, n.EmailTemplate, data); err != nil {
			metrics.EmailsFailed.Inc()
			logger.CtxWithError(ctx, "failed to send notification email", err,
				"user_id", n.UserID,
				"template", n.EmailTemplate,
			)
		}
	}
}

func (s *notificationService) List(ctx context.Context, db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindByUser(db.WithContext(ctx), userID, unreadOnly)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, id string) error {
	return mapRepoError(s.notificationRepo.MarkAsRead(db.WithContext(ctx), id, userID, time.Now()))
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	n, err := s.notificationRepo.MarkAllAsRead(db.WithContext(ctx), userID, time.Now())
	if err != nil {
		return 0, mapRepoError(err)
	}
	return n, nil
}
