package repositories

import (
	"fmt"
	"strings"
	"time"

	"consultbr_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	// Entrepreneur
	CreateEntrepreneurProfile(db *gorm.DB, profile *models.EntrepreneurProfile) error
	FindEntrepreneurProfileByID(db *gorm.DB, id string) (*models.EntrepreneurProfile, error)
	FindEntrepreneurProfileByUserID(db *gorm.DB, userID string) (*models.EntrepreneurProfile, error)
	UpdateEntrepreneurProfile(db *gorm.DB, id string, updates map[string]interface{}) error

	// Consultant
	CreateConsultantProfile(db *gorm.DB, profile *models.ConsultantProfile) error
	FindConsultantProfileByID(db *gorm.DB, id string) (*models.ConsultantProfile, error)
	FindConsultantProfileByUserID(db *gorm.DB, userID string) (*models.ConsultantProfile, error)
	UpdateConsultantProfile(db *gorm.DB, id string, updates map[string]interface{}) error
	IncrementProfileViews(db *gorm.DB, id string) error

	// Search
	FindConsultants(db *gorm.DB, filter ConsultantFilter, limit, offset int) ([]models.ConsultantProfile, error)
}

// ConsultantFilter - параметры поиска консультантов
type ConsultantFilter struct {
	Search         string
	Specialization string
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

// --- Entrepreneur ---

func (r *ProfileRepositoryImpl) CreateEntrepreneurProfile(db *gorm.DB, profile *models.EntrepreneurProfile) error {
	if err := db.Omit("User").Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindEntrepreneurProfileByID(db *gorm.DB, id string) (*models.EntrepreneurProfile, error) {
	if !isUUID(id) {
		return nil, ErrProfileNotFound
	}
	var profile models.EntrepreneurProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindEntrepreneurProfileByUserID(db *gorm.DB, userID string) (*models.EntrepreneurProfile, error) {
	var profile models.EntrepreneurProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateEntrepreneurProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.EntrepreneurProfile{}, id, updates, ErrProfileNotFound)
}

// --- Consultant ---

func (r *ProfileRepositoryImpl) CreateConsultantProfile(db *gorm.DB, profile *models.ConsultantProfile) error {
	if err := db.Omit("User").Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindConsultantProfileByID(db *gorm.DB, id string) (*models.ConsultantProfile, error) {
	if !isUUID(id) {
		return nil, ErrProfileNotFound
	}
	var profile models.ConsultantProfile
	if err := db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindConsultantProfileByUserID(db *gorm.DB, userID string) (*models.ConsultantProfile, error) {
	var profile models.ConsultantProfile
	if err := db.Preload("User").First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateConsultantProfile(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.ConsultantProfile{}, id, updates, ErrProfileNotFound)
}

func (r *ProfileRepositoryImpl) IncrementProfileViews(db *gorm.DB, id string) error {
	return db.Model(&models.ConsultantProfile{}).
		Where("id = ?", id).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error
}

// FindConsultants: только acceptingClients, сортировка по рейтингу
func (r *ProfileRepositoryImpl) FindConsultants(db *gorm.DB, filter ConsultantFilter, limit, offset int) ([]models.ConsultantProfile, error) {
	limit, offset = normalizePage(limit, offset)

	query := db.Model(&models.ConsultantProfile{}).
		Joins("JOIN users ON users.id = consultant_profiles.user_id").
		Where("consultant_profiles.accepting_clients = ?", true)

	if industry := strings.TrimSpace(filter.Specialization); industry != "" {
		query = query.Where("consultant_profiles.industries @> ?", pq.Array([]string{industry}))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := fmt.Sprintf("%%%s%%", escapeLike(search))
		query = query.Where(
			"consultant_profiles.title ILIKE ? OR consultant_profiles.bio ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var profiles []models.ConsultantProfile
	err := query.
		Preload("User").
		// отзывов нет, average_rating у всех 0; фактически порядок по created_at
		Order("consultant_profiles.average_rating DESC").
		Order("consultant_profiles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	return profiles, err
}

// escapeLike экранирует спецсимволы ILIKE в пользовательском вводе
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// updateByID - частичное обновление по первичному ключу
func updateByID(db *gorm.DB, model interface{}, id string, updates map[string]interface{}, notFoundErr error) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	result := db.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
