package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PortfolioRepository interface {
	Create(db *gorm.DB, item *models.PortfolioItem) error
	FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error)
	// FindPublicByConsultant - только публичные работы, новые первыми
	FindPublicByConsultant(db *gorm.DB, consultantID string) ([]models.PortfolioItem, error)
	FindByConsultant(db *gorm.DB, consultantID string) ([]models.PortfolioItem, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Omit(clause.Associations).Create(item).Error
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error) {
	if !isUUID(id) {
		return nil, ErrPortfolioItemNotFound
	}
	var item models.PortfolioItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrPortfolioItemNotFound)
	}
	return &item, nil
}

func (r *PortfolioRepositoryImpl) FindPublicByConsultant(db *gorm.DB, consultantID string) ([]models.PortfolioItem, error) {
	if !isUUID(consultantID) {
		return []models.PortfolioItem{}, nil
	}
	var items []models.PortfolioItem
	err := db.Where("consultant_id = ? AND is_public = ?", consultantID, true).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) FindByConsultant(db *gorm.DB, consultantID string) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("consultant_id = ?", consultantID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.PortfolioItem{}, id, updates, ErrPortfolioItemNotFound)
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.PortfolioItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}
