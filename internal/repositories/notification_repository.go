package repositories

import (
	"time"

	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(db *gorm.DB, id, userID string, at time.Time) error
	MarkAllAsRead(db *gorm.DB, userID string, at time.Time) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Omit(clause.Associations).Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	if !isUUID(id) {
		return nil, ErrNotificationNotFound
	}
	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrNotificationNotFound)
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkAsRead обновляет только уведомление владельца
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, id, userID string, at time.Time) error {
	if !isUUID(id) {
		return ErrNotificationNotFound
	}
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": at, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string, at time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at, "updated_at": at})
	return result.RowsAffected, result.Error
}
