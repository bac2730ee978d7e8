package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *models.Favorite) error
	// Delete идемпотентен: отсутствие записи не ошибка
	Delete(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) error
	FindByUser(db *gorm.DB, userID string, targetType *models.FavoriteTarget) ([]models.Favorite, error)
	Exists(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) (bool, error)
	CountByUser(db *gorm.DB, userID string, targetType models.FavoriteTarget) (int64, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.Favorite) error {
	if err := db.Omit(clause.Associations).Create(favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrFavoriteAlreadyExists
		}
		return err
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Delete(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) error {
	return db.Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepositoryImpl) FindByUser(db *gorm.DB, userID string, targetType *models.FavoriteTarget) ([]models.Favorite, error) {
	query := db.Where("user_id = ?", userID)
	if targetType != nil {
		query = query.Where("target_type = ?", *targetType)
	}

	var favorites []models.Favorite
	err := query.Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, targetID string, targetType models.FavoriteTarget) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepositoryImpl) CountByUser(db *gorm.DB, userID string, targetType models.FavoriteTarget) (int64, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND target_type = ?", userID, targetType).
		Count(&count).Error
	return count, err
}
