package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
)

type SpecializationRepository interface {
	Create(db *gorm.DB, spec *models.Specialization) error
	// FindActive - активные специализации по алфавиту
	FindActive(db *gorm.DB) ([]models.Specialization, error)
}

type SpecializationRepositoryImpl struct{}

func NewSpecializationRepository() SpecializationRepository {
	return &SpecializationRepositoryImpl{}
}

func (r *SpecializationRepositoryImpl) Create(db *gorm.DB, spec *models.Specialization) error {
	if err := db.Create(spec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSpecializationExists
		}
		return err
	}
	return nil
}

func (r *SpecializationRepositoryImpl) FindActive(db *gorm.DB) ([]models.Specialization, error) {
	var specs []models.Specialization
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&specs).Error
	return specs, err
}
