package repositories

import (
	"time"

	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	// FindBetweenUsers - переписка двух пользователей, от старых к новым
	FindBetweenUsers(db *gorm.DB, userA, userB string, projectID *string) ([]models.Message, error)
	// FindForUser - все сообщения пользователя, от новых к старым
	FindForUser(db *gorm.DB, userID string) ([]models.Message, error)
	FindReplies(db *gorm.DB, parentID string) ([]models.Message, error)
	MarkAsRead(db *gorm.DB, id string, at time.Time) error
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Omit(clause.Associations).Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	if !isUUID(id) {
		return nil, ErrMessageNotFound
	}
	var message models.Message
	if err := db.First(&message, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrMessageNotFound)
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) FindBetweenUsers(db *gorm.DB, userA, userB string, projectID *string) ([]models.Message, error) {
	query := db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	)
	if projectID != nil && *projectID != "" {
		query = query.Where("project_id = ?", *projectID)
	}

	var messages []models.Message
	err := query.Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindForUser(db *gorm.DB, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindReplies(db *gorm.DB, parentID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkAsRead(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": at, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
