package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	// FindByIDForUpdate блокирует строку до конца транзакции
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Project, error)
	FindPublished(db *gorm.DB, limit, offset int) ([]models.Project, error)
	FindByEntrepreneur(db *gorm.DB, entrepreneurID string) ([]models.Project, error)
	FindByConsultant(db *gorm.DB, consultantID string) ([]models.Project, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
}

type ProjectRepositoryImpl struct{}

func NewProjectRepository() ProjectRepository {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) Create(db *gorm.DB, project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectStatusDraft
	}
	return db.Omit(clause.Associations).Create(project).Error
}

func (r *ProjectRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	if !isUUID(id) {
		return nil, ErrProjectNotFound
	}
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Project, error) {
	if !isUUID(id) {
		return nil, ErrProjectNotFound
	}
	var project models.Project
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindPublished(db *gorm.DB, limit, offset int) ([]models.Project, error) {
	limit, offset = normalizePage(limit, offset)

	var projects []models.Project
	err := db.Where("status = ?", models.ProjectStatusPublished).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) FindByEntrepreneur(db *gorm.DB, entrepreneurID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.Where("entrepreneur_id = ?", entrepreneurID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) FindByConsultant(db *gorm.DB, consultantID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.Where("consultant_id = ?", consultantID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return updateByID(db, &models.Project{}, id, updates, ErrProjectNotFound)
}
